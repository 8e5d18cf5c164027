// SPDX-License-Identifier: MIT

package contractor

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultRatio is the relative narrowing below which loops stop.
	DefaultRatio = 0.1

	// DefaultMaxIter bounds fixpoint loops and Newton iterations; HC4 may
	// revise each constraint this many times per call.
	DefaultMaxIter = 50

	// DefaultCeil is the widest box Newton-type contractors act on.
	DefaultCeil = 0.01

	// DefaultInflationDelta and DefaultInflationChi parameterize the
	// ε-inflation mid + δ·(x - mid) + [-χ, χ].
	DefaultInflationDelta = 1.1
	DefaultInflationChi   = 1e-12
)

// Options configures contractors; each constructor reads the fields it
// needs.
type Options struct {
	ratio     float64
	maxIter   int
	ceil      float64
	epsH      float64
	delta     float64
	chi       float64
	esc       *Escalation
	lpTimeout time.Duration
}

// Option mutates Options. Option constructors panic on invalid values.
type Option func(*Options)

// WithRatio sets the loop threshold. Panics unless 0 ≤ r < 1.
func WithRatio(r float64) Option {
	if !(r >= 0 && r < 1) {
		panic(fmt.Sprintf("contractor: WithRatio(%g): ratio must be in [0,1)", r))
	}
	return func(o *Options) { o.ratio = r }
}

// WithMaxIter sets the iteration bound. Panics unless n ≥ 1.
func WithMaxIter(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("contractor: WithMaxIter(%d): must be >= 1", n))
	}
	return func(o *Options) { o.maxIter = n }
}

// WithCeil sets the widest box Newton-type contractors act on (+Inf for
// every box). Panics unless c > 0.
func WithCeil(c float64) Option {
	if !(c > 0) {
		panic(fmt.Sprintf("contractor: WithCeil(%g): must be > 0", c))
	}
	return func(o *Options) { o.ceil = c }
}

// WithEpsH relaxes equalities by ±eps. Panics unless eps ≥ 0.
func WithEpsH(eps float64) Option {
	if !(eps >= 0) || math.IsInf(eps, 1) {
		panic(fmt.Sprintf("contractor: WithEpsH(%g): must be finite and >= 0", eps))
	}
	return func(o *Options) { o.epsH = eps }
}

// WithInflation sets the ε-inflation parameters. Panics unless delta ≥ 1
// and chi ≥ 0.
func WithInflation(delta, chi float64) Option {
	if !(delta >= 1) || !(chi >= 0) {
		panic(fmt.Sprintf("contractor: WithInflation(%g, %g): need delta >= 1, chi >= 0", delta, chi))
	}
	return func(o *Options) { o.delta, o.chi = delta, chi }
}

// WithEscalation routes degeneracy reports to e.
func WithEscalation(e *Escalation) Option {
	return func(o *Options) { o.esc = e }
}

// WithLPTimeout bounds each LP call (0 for none). Panics on a negative d.
func WithLPTimeout(d time.Duration) Option {
	if d < 0 {
		panic(fmt.Sprintf("contractor: WithLPTimeout(%v): must be >= 0", d))
	}
	return func(o *Options) { o.lpTimeout = d }
}

// DefaultOptions returns the package defaults.
func DefaultOptions() Options {
	return Options{
		ratio:   DefaultRatio,
		maxIter: DefaultMaxIter,
		ceil:    DefaultCeil,
		delta:   DefaultInflationDelta,
		chi:     DefaultInflationChi,
	}
}

func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.esc == nil {
		o.esc = NewEscalation(nil)
	}

	return o
}
