// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/ivlath/search"
)

// metrics returns search metrics on a fresh registry. With --metrics-addr
// the registry is served on /metrics until the returned stop is called.
func (e *env) metrics() (*search.Metrics, func()) {
	reg := prometheus.NewRegistry()
	m := search.NewMetrics(reg)
	if e.opts.MetricsAddr == "" {
		return m, func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: e.opts.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.Error("metrics server failed", "addr", e.opts.MetricsAddr, "error", err)
		}
	}()
	e.logger.Info("serving metrics", "addr", e.opts.MetricsAddr)

	return m, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			e.logger.Warn("metrics server shutdown", "error", err)
		}
	}
}
