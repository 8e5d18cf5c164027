// SPDX-License-Identifier: MIT

// Package interval - exponential, logarithmic, power and hyperbolic functions.
//
// Every function relies on monotonicity on its domain: the endpoint values
// are computed with the platform math library and pushed outward by
// rounding.TranscendentalULP ulps; exact special values (exp(0), log(1),
// integer powers) are computed exactly. Inputs are first intersected with the
// function's domain, so a domain violation yields the empty set.

package interval

import (
	"math"

	"github.com/katalvlaran/ivlath/rounding"
)

// maxRootSteps bounds the ulp-correction loop of Root.
const maxRootSteps = 64

// lo returns a sound lower bound for f(v) given the nearest value r.
func lo(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return r
	}

	return rounding.WidenDown(r, rounding.TranscendentalULP)
}

// hi returns a sound upper bound for f(v) given the nearest value r.
func hi(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return r
	}

	return rounding.WidenUp(r, rounding.TranscendentalULP)
}

// finiteLB maps a +Inf lower bound (overflow of a finite argument) back to
// the largest double so the result is not mistaken for the empty set.
func finiteLB(v float64) float64 {
	if math.IsInf(v, 1) {
		return math.MaxFloat64
	}

	return v
}

// finiteUB mirrors finiteLB for upper bounds.
func finiteUB(v float64) float64 {
	if math.IsInf(v, -1) {
		return -math.MaxFloat64
	}

	return v
}

func expDown(v float64) float64 {
	switch {
	case math.IsInf(v, -1):
		return 0
	case v == 0:
		return 1
	}

	return math.Max(0, finiteLB(lo(math.Exp(v))))
}

func expUp(v float64) float64 {
	if v == 0 {
		return 1
	}

	return hi(math.Exp(v))
}

// Exp returns e^x.
func (x Interval) Exp() Interval {
	if x.IsEmpty() {
		return EmptySet
	}

	return mk(expDown(x.lb), expUp(x.ub))
}

func logDown(v float64) float64 {
	switch {
	case v == 0:
		return negInf
	case v == 1:
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	}

	return lo(math.Log(v))
}

func logUp(v float64) float64 {
	switch {
	case v == 1:
		return 0
	case v == 0:
		return negInf
	}

	return finiteUB(hi(math.Log(v)))
}

// Log returns ln(x ∩ [0, +Inf)); the lower bound is -Inf when 0 ∈ x.
func (x Interval) Log() Interval {
	x = x.Inter(Pos)
	if x.IsEmpty() || x.ub == 0 {
		return EmptySet
	}

	return mk(logDown(x.lb), logUp(x.ub))
}

// Sqrt returns √(x ∩ [0, +Inf)).
func (x Interval) Sqrt() Interval {
	x = x.Inter(Pos)
	if x.IsEmpty() {
		return EmptySet
	}

	return mk(rounding.SqrtDown(x.lb), rounding.SqrtUp(x.ub))
}

// powUp returns an upper bound of v^n for v ≥ 0, n ≥ 1 (binary powering,
// every partial product rounded up; monotone because all factors are ≥ 0).
func powUp(v float64, n int) float64 {
	r := 1.0
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			r = mulUp(r, v)
		}
		v = mulUp(v, v)
	}

	return r
}

// powDown is the lower-bound counterpart of powUp.
func powDown(v float64, n int) float64 {
	r := 1.0
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			r = mulDown(r, v)
		}
		v = mulDown(v, v)
	}

	return r
}

// Pow returns x^n for an integer exponent.
//
// Behavior highlights:
//   - n == 0 gives [1, 1] for any non-empty x.
//   - n < 0 is computed as 1 / x^|n| (so 0 ∈ x yields an unbounded result).
//   - Even n folds x onto [0, +Inf) first, giving a tight result when x
//     straddles 0.
func (x Interval) Pow(n int) Interval {
	if x.IsEmpty() {
		return EmptySet
	}
	switch {
	case n == 0:
		return One
	case n == 1:
		return x
	case n == 2:
		return x.Sqr()
	case n < 0:
		return One.Div(x.Pow(-n))
	}

	if n%2 == 0 {
		m := x.Abs()
		return mk(powDown(m.lb, n), powUp(m.ub, n))
	}
	// odd: monotone increasing on R
	var l, u float64
	if x.lb >= 0 {
		l = powDown(x.lb, n)
	} else {
		l = -powUp(-x.lb, n)
	}
	if x.ub >= 0 {
		u = powUp(x.ub, n)
	} else {
		u = -powDown(-x.ub, n)
	}

	return mk(l, u)
}

// PowReal returns x^y = exp(y·ln x) for x ∩ [0, +Inf).
func (x Interval) PowReal(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return EmptySet
	}
	if y.IsDegenerated() && y.lb == math.Trunc(y.lb) && math.Abs(y.lb) < 1<<30 {
		return x.Pow(int(y.lb))
	}

	return y.Mul(x.Log()).Exp()
}

// rootUp returns the smallest double r found with r^n ≥ v, v ≥ 0.
func rootUp(v float64, n int) float64 {
	if v == 0 || math.IsInf(v, 1) {
		return v
	}
	r := math.Pow(v, 1/float64(n))
	for i := 0; powDown(r, n) < v; i++ {
		if i == maxRootSteps {
			return hi(r)
		}
		r = nextUp(r)
	}

	return r
}

// rootDown returns the largest double r found with r^n ≤ v, v ≥ 0.
func rootDown(v float64, n int) float64 {
	if v == 0 || math.IsInf(v, 1) {
		return v
	}
	r := math.Pow(v, 1/float64(n))
	for i := 0; r > 0 && powUp(r, n) > v; i++ {
		if i == maxRootSteps {
			return math.Max(0, lo(r))
		}
		r = nextDown(r)
	}

	return r
}

// Root returns the real n-th root of x (n ≥ 1). Even roots restrict x to
// [0, +Inf); odd roots are defined on all of R. n ≤ 0 yields the empty set.
func (x Interval) Root(n int) Interval {
	if x.IsEmpty() || n <= 0 {
		return EmptySet
	}
	switch n {
	case 1:
		return x
	case 2:
		return x.Sqrt()
	}
	if n%2 == 0 {
		x = x.Inter(Pos)
		if x.IsEmpty() {
			return EmptySet
		}

		return mk(rootDown(x.lb, n), rootUp(x.ub, n))
	}

	var l, u float64
	if x.lb >= 0 {
		l = rootDown(x.lb, n)
	} else {
		l = -rootUp(-x.lb, n)
	}
	if x.ub >= 0 {
		u = rootUp(x.ub, n)
	} else {
		u = -rootDown(-x.ub, n)
	}

	return mk(l, u)
}

// Sinh returns the hyperbolic sine (monotone increasing).
func (x Interval) Sinh() Interval {
	if x.IsEmpty() {
		return EmptySet
	}
	l, u := negInf, posInf
	if !math.IsInf(x.lb, -1) {
		l = finiteLB(lo(math.Sinh(x.lb)))
		if x.lb == 0 {
			l = 0
		}
	}
	if !math.IsInf(x.ub, 1) {
		u = finiteUB(hi(math.Sinh(x.ub)))
		if x.ub == 0 {
			u = 0
		}
	}

	return mk(l, u)
}

// Cosh returns the hyperbolic cosine (even, minimum 1 at 0).
func (x Interval) Cosh() Interval {
	if x.IsEmpty() {
		return EmptySet
	}
	m := x.Abs()
	l := 1.0
	if m.lb > 0 {
		l = math.Max(1, finiteLB(lo(math.Cosh(m.lb))))
	}
	u := 1.0
	if m.ub > 0 {
		u = hi(math.Cosh(m.ub))
	}

	return mk(l, u)
}

// Tanh returns the hyperbolic tangent, clipped to [-1, 1].
func (x Interval) Tanh() Interval {
	if x.IsEmpty() {
		return EmptySet
	}
	l := math.Max(-1, lo(math.Tanh(x.lb)))
	u := math.Min(1, hi(math.Tanh(x.ub)))
	if x.lb == 0 {
		l = 0
	}
	if x.ub == 0 {
		u = 0
	}

	return mk(l, u)
}

// Asinh returns the inverse hyperbolic sine (monotone on R).
func (x Interval) Asinh() Interval {
	if x.IsEmpty() {
		return EmptySet
	}
	l, u := lo(math.Asinh(x.lb)), hi(math.Asinh(x.ub))
	if x.lb == 0 {
		l = 0
	}
	if x.ub == 0 {
		u = 0
	}

	return mk(finiteLB(l), finiteUB(u))
}

// Acosh returns the inverse hyperbolic cosine of x ∩ [1, +Inf).
func (x Interval) Acosh() Interval {
	x = x.Inter(Interval{lb: 1, ub: posInf})
	if x.IsEmpty() {
		return EmptySet
	}
	l := 0.0
	if x.lb > 1 {
		l = math.Max(0, finiteLB(lo(math.Acosh(x.lb))))
	}
	u := 0.0
	if x.ub > 1 {
		u = hi(math.Acosh(x.ub))
	}

	return mk(l, u)
}

// Atanh returns the inverse hyperbolic tangent of x ∩ [-1, 1]; the bounds
// ±1 map to ±Inf, so Atanh([1, 1]) is empty.
func (x Interval) Atanh() Interval {
	x = x.Inter(Interval{lb: -1, ub: 1})
	if x.IsEmpty() {
		return EmptySet
	}
	l, u := lo(math.Atanh(x.lb)), hi(math.Atanh(x.ub))
	if x.lb == 0 {
		l = 0
	}
	if x.ub == 0 {
		u = 0
	}

	return mk(l, u)
}
