// SPDX-License-Identifier: MIT

// Package interval - arithmetic operators.
//
// Purpose:
//   - Implement +, -, ×, ÷ and the sign-sensitive unary operators with the
//     tightest bounds that outward rounding allows.
//   - Provide two-piece division (Div2) for divisors straddling zero, the
//     workhorse of backward multiplication.
//
// Conventions:
//   - Lower bounds go through rounding.*Down, upper bounds through rounding.*Up.
//   - 0 × ±Inf is taken as 0 inside interval multiplication (the set product
//     of {0} and an unbounded set is {0}).
//   - Any empty operand yields EmptySet.

package interval

import (
	"math"

	"github.com/katalvlaran/ivlath/rounding"
)

func addDown(a, b float64) float64 { return rounding.AddDown(a, b) }
func addUp(a, b float64) float64   { return rounding.AddUp(a, b) }
func subDown(a, b float64) float64 { return rounding.SubDown(a, b) }
func subUp(a, b float64) float64   { return rounding.SubUp(a, b) }
func nextUp(x float64) float64     { return rounding.NextUp(x) }
func nextDown(x float64) float64   { return rounding.NextDown(x) }

// mulDown is MulDown with the 0 × Inf = 0 convention.
func mulDown(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}

	return rounding.MulDown(a, b)
}

// mulUp is MulUp with the 0 × Inf = 0 convention.
func mulUp(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}

	return rounding.MulUp(a, b)
}

func divDown(a, b float64) float64 {
	if a == 0 {
		return 0
	}

	return rounding.DivDown(a, b)
}

func divUp(a, b float64) float64 {
	if a == 0 {
		return 0
	}

	return rounding.DivUp(a, b)
}

// mk builds an interval from already-rounded bounds, normalizing anything
// invalid (NaN, inverted, +Inf lower bound) to the empty set.
func mk(lb, ub float64) Interval { return New(lb, ub) }

// Neg returns -x.
func (x Interval) Neg() Interval {
	if x.IsEmpty() {
		return EmptySet
	}

	return Interval{lb: -x.ub, ub: -x.lb}
}

// Add returns x + y.
func (x Interval) Add(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return EmptySet
	}
	// (-Inf) + (+Inf) cannot occur: x.lb < +Inf and y.lb < +Inf.
	return mk(addDown(x.lb, y.lb), addUp(x.ub, y.ub))
}

// Sub returns x - y.
func (x Interval) Sub(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return EmptySet
	}

	return mk(subDown(x.lb, y.ub), subUp(x.ub, y.lb))
}

// AddScalar returns x + v. An infinite v yields the empty set.
func (x Interval) AddScalar(v float64) Interval { return x.Add(Point(v)) }

// SubScalar returns x - v.
func (x Interval) SubScalar(v float64) Interval { return x.Sub(Point(v)) }

// MulScalar returns v·x.
func (x Interval) MulScalar(v float64) Interval { return x.Mul(Point(v)) }

// DivScalar returns x / v.
func (x Interval) DivScalar(v float64) Interval { return x.Div(Point(v)) }

// Mul returns x × y using the nine-case sign table.
//
// Implementation:
//   - Stage 1: classify x and y as non-negative, non-positive or straddling 0.
//   - Stage 2: pick the endpoint products that are extremal for the class
//     pair; only the straddling×straddling case needs two candidates per bound.
func (x Interval) Mul(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return EmptySet
	}
	a, b, c, d := x.lb, x.ub, y.lb, y.ub

	switch {
	case a >= 0: // x ≥ 0
		switch {
		case c >= 0:
			return mk(mulDown(a, c), mulUp(b, d))
		case d <= 0:
			return mk(mulDown(b, c), mulUp(a, d))
		default:
			return mk(mulDown(b, c), mulUp(b, d))
		}
	case b <= 0: // x ≤ 0
		switch {
		case c >= 0:
			return mk(mulDown(a, d), mulUp(b, c))
		case d <= 0:
			return mk(mulDown(b, d), mulUp(a, c))
		default:
			return mk(mulDown(a, d), mulUp(a, c))
		}
	default: // a < 0 < b
		switch {
		case c >= 0:
			return mk(mulDown(a, d), mulUp(b, d))
		case d <= 0:
			return mk(mulDown(b, c), mulUp(a, c))
		default:
			return mk(
				math.Min(mulDown(a, d), mulDown(b, c)),
				math.Max(mulUp(a, c), mulUp(b, d)),
			)
		}
	}
}

// Div returns x / y.
//
// Behavior highlights:
//   - y == [0, 0] gives the empty set.
//   - 0 ∈ x and 0 ∈ y gives AllReals.
//   - y containing 0 at one bound gives a half-line; y straddling 0 gives the
//     hull of the two pieces, i.e. AllReals (see Div2 for the pieces).
func (x Interval) Div(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return EmptySet
	}
	a, b, c, d := x.lb, x.ub, y.lb, y.ub

	if c == 0 && d == 0 {
		return EmptySet
	}

	switch {
	case c > 0:
		switch {
		case a >= 0:
			return mk(divDown(a, d), divUp(b, c))
		case b <= 0:
			return mk(divDown(a, c), divUp(b, d))
		default:
			return mk(divDown(a, c), divUp(b, c))
		}
	case d < 0:
		switch {
		case a >= 0:
			return mk(divDown(b, d), divUp(a, c))
		case b <= 0:
			return mk(divDown(b, c), divUp(a, d))
		default:
			return mk(divDown(b, d), divUp(a, d))
		}
	}

	// 0 ∈ y from here on.
	switch {
	case a <= 0 && b >= 0:
		return AllReals
	case a > 0:
		switch {
		case c == 0:
			return mk(divDown(a, d), posInf)
		case d == 0:
			return mk(negInf, divUp(a, c))
		}
	default: // b < 0
		switch {
		case c == 0:
			return mk(negInf, divUp(b, d))
		case d == 0:
			return mk(divDown(b, c), posInf)
		}
	}

	return AllReals
}

// Div2 computes the division num / div as (at most) two disjoint pieces.
// out2 is non-empty only when div strictly straddles 0 and num excludes 0;
// otherwise out1 holds the whole quotient.
//
// Example: [1,1] / [-1,1] = (-Inf,-1] ∪ [1,+Inf).
//
// When both num and div contain 0, the quotient set is all reals (any t
// satisfies num ∋ t·div); this is checked before the div == [0,0] case so
// that backward multiplication stays sound.
func Div2(num, div Interval) (out1, out2 Interval) {
	if num.IsEmpty() || div.IsEmpty() {
		return EmptySet, EmptySet
	}
	a, b, c, d := num.lb, num.ub, div.lb, div.ub

	if a <= 0 && b >= 0 && c <= 0 && d >= 0 {
		return AllReals, EmptySet
	}
	if c == 0 && d == 0 {
		return EmptySet, EmptySet
	}
	if !(c < 0 && d > 0) {
		return num.Div(div), EmptySet
	}
	if a > 0 {
		return mk(negInf, divUp(a, c)), mk(divDown(a, d), posInf)
	}
	// b < 0
	return mk(negInf, divUp(b, d)), mk(divDown(b, c), posInf)
}

// Div2Inter narrows x to x ∩ Div2(num, div). x becomes the first non-empty
// piece; the second one is returned in out2, empty when it is empty or
// already contained in x. ok is false when nothing survives.
func (x *Interval) Div2Inter(num, div Interval) (out2 Interval, ok bool) {
	o1, o2 := Div2(num, div)
	o1, o2 = o1.Inter(*x), o2.Inter(*x)
	if o1.IsEmpty() {
		o1, o2 = o2, EmptySet
	}
	*x = o1
	if o1.IsEmpty() {
		return EmptySet, false
	}
	if o2.IsSubset(o1) {
		o2 = EmptySet
	}

	return o2, true
}

// Sqr returns x², tighter than x.Mul(x) when x straddles 0.
func (x Interval) Sqr() Interval {
	if x.IsEmpty() {
		return EmptySet
	}
	a, b := x.lb, x.ub
	switch {
	case a >= 0:
		return mk(mulDown(a, a), mulUp(b, b))
	case b <= 0:
		return mk(mulDown(b, b), mulUp(a, a))
	default:
		return mk(0, math.Max(mulUp(a, a), mulUp(b, b)))
	}
}

// Abs returns |x|.
func (x Interval) Abs() Interval {
	if x.IsEmpty() {
		return EmptySet
	}
	switch {
	case x.lb >= 0:
		return x
	case x.ub <= 0:
		return x.Neg()
	default:
		return Interval{lb: 0, ub: math.Max(-x.lb, x.ub)}
	}
}

// Min returns {min(s, t) : s ∈ x, t ∈ y}.
func Min(x, y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return EmptySet
	}

	return Interval{lb: math.Min(x.lb, y.lb), ub: math.Min(x.ub, y.ub)}
}

// Max returns {max(s, t) : s ∈ x, t ∈ y}.
func Max(x, y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return EmptySet
	}

	return Interval{lb: math.Max(x.lb, y.lb), ub: math.Max(x.ub, y.ub)}
}

func signOf(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// Sign returns the hull of sign(t) for t ∈ x.
func (x Interval) Sign() Interval {
	if x.IsEmpty() {
		return EmptySet
	}

	return Interval{lb: signOf(x.lb), ub: signOf(x.ub)}
}

// Integer returns the largest interval with integer bounds contained in x
// (empty when x holds no integer).
func (x Interval) Integer() Interval {
	if x.IsEmpty() {
		return EmptySet
	}

	return mk(math.Ceil(x.lb), math.Floor(x.ub))
}
