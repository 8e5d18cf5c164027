// SPDX-License-Identifier: MIT

package interval

import (
	"math"
	"strconv"
)

// Interval is a closed interval [lb, ub] of reals, possibly unbounded.
//
// The zero value is the degenerate interval [0, 0]. Use Empty() for the
// default "no information yet" value and Entire() for all reals.
type Interval struct {
	lb, ub float64
}

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// Named constants.
var (
	// EmptySet is the canonical empty interval.
	EmptySet = Interval{lb: posInf, ub: negInf}

	// AllReals is (-Inf, +Inf).
	AllReals = Interval{lb: negInf, ub: posInf}

	// Pos is [0, +Inf).
	Pos = Interval{lb: 0, ub: posInf}

	// Neg is (-Inf, 0].
	Neg = Interval{lb: negInf, ub: 0}

	// Zero is [0, 0].
	Zero = Interval{}

	// One is [1, 1].
	One = Interval{lb: 1, ub: 1}

	// Pi encloses π between two adjacent doubles.
	Pi = Interval{lb: 3.141592653589793, ub: 3.1415926535897936}

	// HalfPi encloses π/2.
	HalfPi = Interval{lb: 1.5707963267948966, ub: 1.5707963267948968}

	// TwoPi encloses 2π.
	TwoPi = Interval{lb: 6.283185307179586, ub: 6.283185307179587}
)

// New returns [lb, ub]. It returns the empty set when lb > ub, lb == +Inf,
// ub == -Inf or either bound is NaN; those are not errors.
func New(lb, ub float64) Interval {
	if math.IsNaN(lb) || math.IsNaN(ub) || lb > ub || math.IsInf(lb, 1) || math.IsInf(ub, -1) {
		return EmptySet
	}

	return Interval{lb: lb, ub: ub}
}

// Point returns the degenerate interval [x, x]. Infinite or NaN x gives the empty set.
func Point(x float64) Interval { return New(x, x) }

// Empty returns the empty set.
func Empty() Interval { return EmptySet }

// Entire returns (-Inf, +Inf).
func Entire() Interval { return AllReals }

// PiMul returns an enclosure of k·π.
func PiMul(k float64) Interval { return Pi.MulScalar(k) }

// LB returns the lower bound (+Inf for the empty set).
func (x Interval) LB() float64 { return x.lb }

// UB returns the upper bound (-Inf for the empty set).
func (x Interval) UB() float64 { return x.ub }

// Bounds returns both bounds.
func (x Interval) Bounds() (float64, float64) { return x.lb, x.ub }

// IsEmpty reports whether x is the empty set.
func (x Interval) IsEmpty() bool { return !(x.lb <= x.ub) }

// IsDegenerated reports whether x is a single point (lb == ub).
func (x Interval) IsDegenerated() bool { return x.lb == x.ub }

// IsUnbounded reports whether one of the bounds is infinite.
func (x Interval) IsUnbounded() bool {
	return !x.IsEmpty() && (math.IsInf(x.lb, -1) || math.IsInf(x.ub, 1))
}

// Mid returns a midpoint that always lies in x:
//   - 0 when both bounds are infinite,
//   - ∓MaxFloat64 when only one bound is infinite,
//   - lb/2 + ub/2 otherwise (no overflow), clipped into [lb, ub].
//
// Mid of the empty set is NaN.
func (x Interval) Mid() float64 {
	switch {
	case x.IsEmpty():
		return math.NaN()
	case math.IsInf(x.lb, -1) && math.IsInf(x.ub, 1):
		return 0
	case math.IsInf(x.lb, -1):
		return math.Min(-math.MaxFloat64, x.ub)
	case math.IsInf(x.ub, 1):
		return math.Max(math.MaxFloat64, x.lb)
	case x.lb == x.ub:
		return x.lb
	}
	m := 0.5*x.lb + 0.5*x.ub
	if m < x.lb {
		m = x.lb
	} else if m > x.ub {
		m = x.ub
	}

	return m
}

// Diam returns ub - lb rounded upward, +Inf when unbounded, 0 when empty.
func (x Interval) Diam() float64 {
	if x.IsEmpty() {
		return 0
	}
	if x.IsUnbounded() {
		return posInf
	}

	return subUp(x.ub, x.lb)
}

// Rad returns half the diameter rounded upward.
func (x Interval) Rad() float64 {
	d := x.Diam()
	if math.IsInf(d, 1) {
		return d
	}

	return mulUp(0.5, d)
}

// Mig returns min{|t| : t in x} (distance of x to zero). NaN for the empty set.
func (x Interval) Mig() float64 {
	switch {
	case x.IsEmpty():
		return math.NaN()
	case x.lb >= 0:
		return x.lb
	case x.ub <= 0:
		return -x.ub
	default:
		return 0
	}
}

// Mag returns max{|t| : t in x}. NaN for the empty set.
func (x Interval) Mag() float64 {
	if x.IsEmpty() {
		return math.NaN()
	}

	return math.Max(math.Abs(x.lb), math.Abs(x.ub))
}

// Contains reports whether the point v lies in x.
func (x Interval) Contains(v float64) bool { return x.lb <= v && v <= x.ub }

// InteriorContains reports whether v lies strictly inside x.
func (x Interval) InteriorContains(v float64) bool { return x.lb < v && v < x.ub }

// IsSubset reports whether x ⊆ y. The empty set is a subset of everything.
func (x Interval) IsSubset(y Interval) bool {
	return x.IsEmpty() || (y.lb <= x.lb && x.ub <= y.ub)
}

// IsStrictSubset reports whether x ⊆ y and x != y.
func (x Interval) IsStrictSubset(y Interval) bool {
	if y.IsEmpty() {
		return false
	}
	if x.IsEmpty() {
		return true
	}

	return x.IsSubset(y) && (y.lb < x.lb || x.ub < y.ub)
}

// IsInteriorSubset reports whether x is included in the interior of y.
// Infinite bounds of y count as open, so (-Inf, 0] is interior to (-Inf, 1].
func (x Interval) IsInteriorSubset(y Interval) bool {
	if x.IsEmpty() {
		return true
	}
	if y.IsEmpty() {
		return false
	}
	lowOK := y.lb < x.lb || math.IsInf(y.lb, -1)
	highOK := x.ub < y.ub || math.IsInf(y.ub, 1)

	return lowOK && highOK && x.IsSubset(y)
}

// IsSuperset reports whether y ⊆ x.
func (x Interval) IsSuperset(y Interval) bool { return y.IsSubset(x) }

// Intersects reports whether x ∩ y is not empty.
func (x Interval) Intersects(y Interval) bool {
	return !x.IsEmpty() && !y.IsEmpty() && x.lb <= y.ub && y.lb <= x.ub
}

// OverlapsStrictly reports whether x ∩ y has a non-empty interior.
func (x Interval) OverlapsStrictly(y Interval) bool {
	return !x.IsEmpty() && !y.IsEmpty() && x.lb < y.ub && y.lb < x.ub
}

// IsDisjoint reports whether x ∩ y is empty.
func (x Interval) IsDisjoint(y Interval) bool { return !x.Intersects(y) }

// Equal reports set equality (all empty sets are equal).
func (x Interval) Equal(y Interval) bool {
	if x.IsEmpty() || y.IsEmpty() {
		return x.IsEmpty() && y.IsEmpty()
	}

	return x.lb == y.lb && x.ub == y.ub
}

// IsBisectable reports whether a float strictly between lb and ub exists.
func (x Interval) IsBisectable() bool {
	return !x.IsEmpty() && x.lb < x.ub && nextUp(x.lb) < x.ub
}

// Hull returns the smallest interval containing x and y.
func (x Interval) Hull(y Interval) Interval {
	if x.IsEmpty() {
		return y
	}
	if y.IsEmpty() {
		return x
	}

	return Interval{lb: math.Min(x.lb, y.lb), ub: math.Max(x.ub, y.ub)}
}

// Union is an alias of Hull (the "|" operator of interval libraries).
func (x Interval) Union(y Interval) Interval { return x.Hull(y) }

// HullPoint returns the hull of x and the point v.
func (x Interval) HullPoint(v float64) Interval { return x.Hull(Point(v)) }

// Inter returns x ∩ y (possibly empty).
func (x Interval) Inter(y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return EmptySet
	}

	return New(math.Max(x.lb, y.lb), math.Min(x.ub, y.ub))
}

// Hull returns the hull of a list of intervals (empty for no argument).
func Hull(xs ...Interval) Interval {
	h := EmptySet
	for _, x := range xs {
		h = h.Hull(x)
	}

	return h
}

// String formats x as "[lb, ub]" with the shortest round-tripping decimals,
// or "∅" for the empty set.
func (x Interval) String() string {
	if x.IsEmpty() {
		return "∅"
	}

	return "[" + formatBound(x.lb) + ", " + formatBound(x.ub) + "]"
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+oo"
	case math.IsInf(v, -1):
		return "-oo"
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
