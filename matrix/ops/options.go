// SPDX-License-Identifier: MIT

package ops

import "math"

// DefaultPivotTolerance is the smallest pivot magnitude, relative to the
// largest entry of the matrix, accepted by LU before ErrSingular.
const DefaultPivotTolerance = 1e-14

const panicPivotTolerance = "ops: WithPivotTolerance: tol must be finite, in [0, 1)"

// Option configures LU-based routines.
type Option func(*Options)

// Options stores the effective configuration.
type Options struct {
	pivotTol float64
}

// WithPivotTolerance sets the relative pivot threshold. It panics on values
// outside [0, 1) (programmer error).
func WithPivotTolerance(tol float64) Option {
	if math.IsNaN(tol) || tol < 0 || tol >= 1 {
		panic(panicPivotTolerance)
	}

	return func(o *Options) { o.pivotTol = tol }
}

func gatherOptions(user ...Option) Options {
	o := Options{pivotTol: DefaultPivotTolerance}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
