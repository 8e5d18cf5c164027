// SPDX-License-Identifier: MIT

package bisector

import (
	"fmt"
	"math"
)

const (
	// DefaultPrec is the width below which a variable is not bisected.
	DefaultPrec = 1e-8

	// DefaultRatio splits at the midpoint.
	DefaultRatio = 0.5
)

// Options configures every strategy.
type Options struct {
	prec  float64
	precs []float64
	ratio float64
}

// Option mutates Options.
type Option func(*Options)

// WithPrec sets one precision for every variable. Panics unless eps ≥ 0.
func WithPrec(eps float64) Option {
	if math.IsNaN(eps) || eps < 0 {
		panic(fmt.Sprintf("bisector: WithPrec(%g): precision must be >= 0", eps))
	}
	return func(o *Options) { o.prec = eps }
}

// WithPrecs sets per-variable precisions (missing entries use the scalar
// precision). Panics on a negative or NaN entry.
func WithPrecs(eps []float64) Option {
	for i, e := range eps {
		if math.IsNaN(e) || e < 0 {
			panic(fmt.Sprintf("bisector: WithPrecs: precision %d is %g, must be >= 0", i, e))
		}
	}
	eps = append([]float64(nil), eps...)
	return func(o *Options) { o.precs = eps }
}

// WithRatio sets the split ratio. Panics unless 0 < r < 1.
func WithRatio(r float64) Option {
	if !(r > 0 && r < 1) {
		panic(fmt.Sprintf("bisector: WithRatio(%g): ratio must be in (0,1)", r))
	}
	return func(o *Options) { o.ratio = r }
}

// DefaultOptions returns DefaultPrec and DefaultRatio.
func DefaultOptions() Options { return Options{prec: DefaultPrec, ratio: DefaultRatio} }

func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// Prec returns the precision of variable i.
func (o Options) Prec(i int) float64 {
	if i < len(o.precs) {
		return o.precs[i]
	}
	return o.prec
}

// Ratio returns the split ratio.
func (o Options) Ratio() float64 { return o.ratio }
