// SPDX-License-Identifier: MIT

// Package interval - trigonometric functions.
//
// Extrema and asymptotes are located rigorously: for a shift s, the
// enclosure t = x/π - s is computed in interval arithmetic and every integer
// that t may contain is treated as a critical point inside x. This can only
// add critical points that are not really there, which widens (never
// narrows) the result.

package interval

import (
	"math"
)

// periodic evaluates sin/cos-like functions whose maxima sit at
// x = (s + 2k)π and minima at x = (s + 2k + 1)π.
func periodic(x Interval, shift float64, f func(float64) float64) Interval {
	if x.IsEmpty() {
		return EmptySet
	}
	whole := Interval{lb: -1, ub: 1}
	if x.IsUnbounded() || x.Diam() >= TwoPi.lb {
		return whole
	}

	fa, fb := f(x.lb), f(x.ub)
	l := math.Max(-1, lo(math.Min(fa, fb)))
	u := math.Min(1, hi(math.Max(fa, fb)))

	t := x.Div(Pi).SubScalar(shift)
	switch k0, k1 := math.Ceil(t.lb), math.Floor(t.ub); {
	case k1 > k0: // two consecutive integers: both parities
		l, u = -1, 1
	case k1 == k0 && math.Mod(k0, 2) == 0:
		u = 1
	case k1 == k0:
		l = -1
	}

	return mk(l, u)
}

// Sin returns sin(x).
func (x Interval) Sin() Interval { return periodic(x, 0.5, math.Sin) }

// Cos returns cos(x).
func (x Interval) Cos() Interval { return periodic(x, 0, math.Cos) }

// Tan returns tan(x); AllReals as soon as x may contain an asymptote
// π/2 + kπ.
func (x Interval) Tan() Interval {
	if x.IsEmpty() {
		return EmptySet
	}
	if x.IsUnbounded() || x.Diam() >= Pi.lb {
		return AllReals
	}
	t := x.Div(Pi).SubScalar(0.5)
	if math.Ceil(t.lb) <= math.Floor(t.ub) {
		return AllReals
	}
	l, u := lo(math.Tan(x.lb)), hi(math.Tan(x.ub))
	if x.lb == 0 {
		l = 0
	}
	if x.ub == 0 {
		u = 0
	}

	return mk(finiteLB(l), finiteUB(u))
}

// Asin returns arcsin(x ∩ [-1, 1]).
func (x Interval) Asin() Interval {
	x = x.Inter(Interval{lb: -1, ub: 1})
	if x.IsEmpty() {
		return EmptySet
	}
	l, u := lo(math.Asin(x.lb)), hi(math.Asin(x.ub))
	if x.lb == 0 {
		l = 0
	}
	if x.ub == 0 {
		u = 0
	}

	return mk(math.Max(l, -HalfPi.ub), math.Min(u, HalfPi.ub))
}

// Acos returns arccos(x ∩ [-1, 1]) (decreasing).
func (x Interval) Acos() Interval {
	x = x.Inter(Interval{lb: -1, ub: 1})
	if x.IsEmpty() {
		return EmptySet
	}
	l, u := lo(math.Acos(x.ub)), hi(math.Acos(x.lb))
	if x.ub == 1 {
		l = 0
	}

	return mk(math.Max(l, 0), math.Min(u, Pi.ub))
}

// Atan returns arctan(x).
func (x Interval) Atan() Interval {
	if x.IsEmpty() {
		return EmptySet
	}
	l, u := lo(math.Atan(x.lb)), hi(math.Atan(x.ub))
	if math.IsInf(x.lb, -1) {
		l = -HalfPi.ub
	}
	if math.IsInf(x.ub, 1) {
		u = HalfPi.ub
	}
	if x.lb == 0 {
		l = 0
	}
	if x.ub == 0 {
		u = 0
	}

	return mk(math.Max(l, -HalfPi.ub), math.Min(u, HalfPi.ub))
}

// Atan2 returns the enclosure of atan2(y, x) over y × x, in [-π, π].
//
// Derivation by quadrant:
//   - x > 0: atan(y/x);
//   - y > 0: π/2 - atan(x/y);
//   - y < 0: -π/2 - atan(x/y);
//   - x < 0, y ≥ 0: π + atan(y/x);
//   - x < 0, y ≤ 0 with 0 ∈ y: the hull of -π + atan(y/x) and π (the
//     branch cut is crossed at y = 0);
//   - x ≥ 0 with 0 ∈ y: [-π/2, π/2];
//   - anything else: [-π, π].
//
// atan2(0, 0) is undefined: y = x = [0, 0] yields the empty set.
func Atan2(y, x Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return EmptySet
	}
	if x.lb == 0 && x.ub == 0 && y.lb == 0 && y.ub == 0 {
		return EmptySet
	}
	full := Interval{lb: -Pi.ub, ub: Pi.ub}

	var r Interval
	switch {
	case x.lb > 0:
		r = y.Div(x).Atan()
	case y.lb > 0:
		r = HalfPi.Sub(x.Div(y).Atan())
	case y.ub < 0:
		r = HalfPi.Neg().Sub(x.Div(y).Atan())
	case x.ub < 0 && y.lb >= 0:
		r = Pi.Add(y.Div(x).Atan())
	case x.ub < 0 && y.ub <= 0:
		r = Pi.Neg().Add(y.Div(x).Atan()).Hull(Pi)
	case x.lb >= 0:
		r = Interval{lb: -HalfPi.ub, ub: HalfPi.ub}
	default:
		r = full
	}

	return r.Inter(full)
}
