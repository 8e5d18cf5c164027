// SPDX-License-Identifier: MIT

package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/ivlath/contractor"
)

const (
	namespace = "ivlath"
	subsystem = "search"

	engineSolver    = "solver"
	engineOptimizer = "optimizer"
)

// Metrics holds the Prometheus collectors of the search engines. A nil
// *Metrics records nothing.
type Metrics struct {
	cells        *prometheus.CounterVec
	contractions *prometheus.CounterVec
	results      *prometheus.CounterVec
	runs         *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	bounds       *prometheus.GaugeVec
}

// NewMetrics builds the collectors and registers them on reg (nothing is
// registered when reg is nil). It panics if a collector with the same name
// is already registered on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		cells: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cells_total",
			Help:      "Cells popped and contracted, by engine.",
		}, []string{"engine"}),
		contractions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "contractions_total",
			Help:      "Cell contractions by outcome.",
		}, []string{"engine", "outcome"}),
		results: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "results_total",
			Help:      "Boxes reported by the solver, by status.",
		}, []string{"status"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Finished runs by engine and stop reason.",
		}, []string{"engine", "stop"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "run_duration_seconds",
			Help:      "Run duration in seconds, by engine.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"engine"}),
		bounds: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "objective_bound",
			Help:      "Latest optimizer bounds on the minimum (loup, uplo).",
		}, []string{"bound"}),
	}
}

func (m *Metrics) cell(engine string, st contractor.Status) {
	if m == nil {
		return
	}
	m.cells.WithLabelValues(engine).Inc()
	m.contractions.WithLabelValues(engine, st.String()).Inc()
}

func (m *Metrics) result(st Status) {
	if m == nil {
		return
	}
	m.results.WithLabelValues(st.String()).Inc()
}

func (m *Metrics) run(engine string, stop Stop, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(engine, stop.String()).Inc()
	m.duration.WithLabelValues(engine).Observe(d.Seconds())
}

func (m *Metrics) objective(loup, uplo float64) {
	if m == nil {
		return
	}
	m.bounds.WithLabelValues("loup").Set(loup)
	m.bounds.WithLabelValues("uplo").Set(uplo)
}
