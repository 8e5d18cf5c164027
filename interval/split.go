// SPDX-License-Identifier: MIT

package interval

import (
	"fmt"
	"math"
)

// Bisect splits x at ratio ∈ (0, 1) into [lb, p] and [p, ub].
//
// Split point:
//   - 0 when x is (-Inf, +Inf);
//   - -MaxFloat64 / +MaxFloat64 when only the lower / upper bound is infinite;
//   - ratio·ub + (1-ratio)·lb otherwise.
//
// A watchdog replaces p by the successor of lb whenever rounding pushed p
// onto (or past) a bound, so both halves are strictly smaller than x.
//
// Bisect panics with ErrNotBisectable when !x.IsBisectable() and with
// ErrBadRatio when ratio is outside (0, 1): both are programmer errors.
func (x Interval) Bisect(ratio float64) (Interval, Interval) {
	if !(ratio > 0 && ratio < 1) {
		panic(fmt.Errorf("Bisect(%v): %w", ratio, ErrBadRatio))
	}
	if !x.IsBisectable() {
		panic(fmt.Errorf("Bisect(%v): %w", x, ErrNotBisectable))
	}

	var p float64
	switch {
	case math.IsInf(x.lb, -1) && math.IsInf(x.ub, 1):
		p = 0
	case math.IsInf(x.lb, -1):
		p = -math.MaxFloat64
	case math.IsInf(x.ub, 1):
		p = math.MaxFloat64
	default:
		p = ratio*x.ub + (1-ratio)*x.lb
	}
	if !(x.lb < p && p < x.ub) {
		p = nextUp(x.lb)
	}

	return Interval{lb: x.lb, ub: p}, Interval{lb: p, ub: x.ub}
}

// Complementary returns the closure of R \ x as at most two intervals.
// With compact set, a degenerate x is treated as having no interior, so its
// complement is all of R.
func (x Interval) Complementary(compact bool) (Interval, Interval) {
	if x.IsEmpty() || (compact && x.IsDegenerated()) {
		return AllReals, EmptySet
	}
	lowOpen := !math.IsInf(x.lb, -1)
	highOpen := !math.IsInf(x.ub, 1)
	switch {
	case lowOpen && highOpen:
		return Interval{lb: negInf, ub: x.lb}, Interval{lb: x.ub, ub: posInf}
	case lowOpen:
		return Interval{lb: negInf, ub: x.lb}, EmptySet
	case highOpen:
		return Interval{lb: x.ub, ub: posInf}, EmptySet
	default:
		return EmptySet, EmptySet
	}
}

// Diff returns the closure of x \ y as at most two intervals, the second
// empty unless y splits x in two. Without compact, a bound of y lying in
// x yields a degenerate piece. With compact set, degenerate pieces are
// dropped (unless x itself is degenerate) and a degenerate x is removed
// entirely when y contains it.
func (x Interval) Diff(y Interval, compact bool) (Interval, Interval) {
	if compact && x.IsDegenerated() {
		if y.Contains(x.lb) {
			return EmptySet, EmptySet
		}

		return x, EmptySet
	}
	c1, c2 := y.Complementary(compact)
	c1, c2 = c1.Inter(x), c2.Inter(x)
	if compact && !x.IsDegenerated() {
		if c1.IsDegenerated() {
			c1 = EmptySet
		}
		if c2.IsDegenerated() {
			c2 = EmptySet
		}
	}
	if c1.IsEmpty() {
		return c2, EmptySet
	}

	return c1, c2
}

// gap returns the distance between two bounds on the same side, treating
// equal infinities as 0 apart.
func gap(outer, inner float64) float64 {
	if outer == inner {
		return 0
	}

	return math.Abs(inner - outer)
}

// Delta returns how much diameter was lost going from x to y ⊆ x, computed
// bound-wise so that x = (-Inf, 5], y = (-Inf, 3] gives 2.
// Delta(x, empty) is Diam(x).
func (x Interval) Delta(y Interval) float64 {
	if x.IsEmpty() {
		return 0
	}
	if y.IsEmpty() {
		return x.Diam()
	}

	return gap(x.lb, y.lb) + gap(x.ub, y.ub)
}

// RatioDelta returns Delta(x, y) relative to Diam(x), in [0, 1].
// An unbounded x contracted to a bounded y counts as a full contraction (1);
// contraction between two unbounded intervals counts as none (0).
func (x Interval) RatioDelta(y Interval) float64 {
	if x.IsEmpty() {
		return 0
	}
	if y.IsEmpty() {
		return 1
	}
	d := x.Diam()
	switch {
	case math.IsInf(d, 1):
		if y.IsUnbounded() {
			return 0
		}

		return 1
	case d == 0:
		return 0
	}

	return math.Min(1, x.Delta(y)/d)
}

// Distance returns the Hausdorff distance max(|x.lb-y.lb|, |x.ub-y.ub|).
func (x Interval) Distance(y Interval) float64 {
	if x.IsEmpty() && y.IsEmpty() {
		return 0
	}
	if x.IsEmpty() || y.IsEmpty() {
		return posInf
	}

	return math.Max(gap(x.lb, y.lb), gap(x.ub, y.ub))
}

// RelDistance returns Distance(x, y) / Diam(x) (0 for a degenerate x equal
// to y, +Inf otherwise when Diam(x) is 0).
func (x Interval) RelDistance(y Interval) float64 {
	dist := x.Distance(y)
	if dist == 0 {
		return 0
	}
	d := x.Diam()
	if d == 0 {
		return posInf
	}
	if math.IsInf(d, 1) {
		if math.IsInf(dist, 1) {
			return 1
		}

		return 0
	}

	return dist / d
}

// Inflate returns mid + delta·(x - mid) + [-chi, chi], the ε-inflation used
// before an existence test. The result contains x whenever delta ≥ 1.
func (x Interval) Inflate(delta, chi float64) Interval {
	if x.IsEmpty() {
		return EmptySet
	}
	if x.IsUnbounded() {
		return x
	}
	m := Point(x.Mid())
	r := x.Sub(m).MulScalar(delta).Add(Interval{lb: -math.Abs(chi), ub: math.Abs(chi)})

	return m.Add(r)
}

// Format implements fmt.Formatter. The %v and %s verbs print String(); a
// precision (e.g. %.3v) is applied to both bounds with the 'g' format.
func (x Interval) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v', 's':
	default:
		fmt.Fprintf(f, "%%!%c(interval.Interval=%s)", verb, x.String())
		return
	}
	prec, ok := f.Precision()
	if !ok || x.IsEmpty() {
		fmt.Fprint(f, x.String())
		return
	}
	fmt.Fprintf(f, "[%.*g, %.*g]", prec, x.lb, prec, x.ub)
}
