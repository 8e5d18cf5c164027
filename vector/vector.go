// SPDX-License-Identifier: MIT

// Package vector - Vector (box) type and component-wise operations.
//
// Complexity quicksheet:
//   - constructors, Clone, element-wise ops: O(n);
//   - SortIndices: O(n log n); Diff: O(n²) (at most 2n boxes of size n).

package vector

import (
	"math"
	"slices"
	"strings"

	"github.com/katalvlaran/ivlath/interval"
)

// Vector is a box: the Cartesian product of its components.
type Vector []interval.Interval

// New returns an n-dimensional box with every component (-Inf, +Inf).
func New(n int) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = interval.AllReals
	}

	return v
}

// Empty returns an n-dimensional empty box.
func Empty(n int) Vector {
	v := make(Vector, n)
	v.SetEmpty()

	return v
}

// NewFromBounds builds a box from [lb, ub] pairs.
func NewFromBounds(bounds [][2]float64) Vector {
	v := make(Vector, len(bounds))
	for i, b := range bounds {
		v[i] = interval.New(b[0], b[1])
	}
	if v.IsEmpty() {
		v.SetEmpty()
	}

	return v
}

// FromPoint returns the degenerate box {pt}.
func FromPoint(pt []float64) Vector {
	v := make(Vector, len(pt))
	for i, p := range pt {
		v[i] = interval.Point(p)
	}

	return v
}

// Len returns the dimension.
func (x Vector) Len() int { return len(x) }

// Clone returns an independent copy.
func (x Vector) Clone() Vector { return slices.Clone(x) }

// CopyFrom overwrites x with y (same dimension).
func (x Vector) CopyFrom(y Vector) {
	mustMatch("CopyFrom", len(x), len(y))
	copy(x, y)
}

// IsEmpty reports whether some component is empty. A zero-dimensional
// vector is not empty.
func (x Vector) IsEmpty() bool {
	for _, c := range x {
		if c.IsEmpty() {
			return true
		}
	}

	return false
}

// SetEmpty marks every component empty.
func (x Vector) SetEmpty() {
	for i := range x {
		x[i] = interval.EmptySet
	}
}

// IsUnbounded reports whether some component is unbounded.
func (x Vector) IsUnbounded() bool {
	for _, c := range x {
		if c.IsUnbounded() {
			return true
		}
	}

	return false
}

// IsFlat reports whether some component is degenerate.
func (x Vector) IsFlat() bool {
	for _, c := range x {
		if c.IsDegenerated() {
			return true
		}
	}

	return false
}

// normalize propagates the emptiness of one component to the whole box.
func (x Vector) normalize() Vector {
	if x.IsEmpty() {
		x.SetEmpty()
	}

	return x
}

// Add returns x + y.
func (x Vector) Add(y Vector) Vector {
	mustMatch("Add", len(x), len(y))
	out := make(Vector, len(x))
	for i := range x {
		out[i] = x[i].Add(y[i])
	}

	return out.normalize()
}

// Sub returns x - y.
func (x Vector) Sub(y Vector) Vector {
	mustMatch("Sub", len(x), len(y))
	out := make(Vector, len(x))
	for i := range x {
		out[i] = x[i].Sub(y[i])
	}

	return out.normalize()
}

// Neg returns -x.
func (x Vector) Neg() Vector {
	out := make(Vector, len(x))
	for i := range x {
		out[i] = x[i].Neg()
	}

	return out
}

// Scale returns k·x.
func (x Vector) Scale(k float64) Vector { return x.ScaleInterval(interval.Point(k)) }

// ScaleInterval returns k·x for an interval scalar.
func (x Vector) ScaleInterval(k interval.Interval) Vector {
	out := make(Vector, len(x))
	for i := range x {
		out[i] = k.Mul(x[i])
	}

	return out.normalize()
}

// Dot returns an enclosure of Σ x[i]·y[i].
func (x Vector) Dot(y Vector) interval.Interval {
	mustMatch("Dot", len(x), len(y))
	s := interval.Zero
	for i := range x {
		s = s.Add(x[i].Mul(y[i]))
	}

	return s
}

// DotPoint returns an enclosure of Σ x[i]·p[i] for a point vector p.
func (x Vector) DotPoint(p []float64) interval.Interval {
	mustMatch("DotPoint", len(x), len(p))
	s := interval.Zero
	for i := range x {
		s = s.Add(x[i].MulScalar(p[i]))
	}

	return s
}

func (x Vector) project(f func(interval.Interval) float64) []float64 {
	out := make([]float64, len(x))
	for i, c := range x {
		out[i] = f(c)
	}

	return out
}

// Mid returns the midpoint vector.
func (x Vector) Mid() []float64 { return x.project(interval.Interval.Mid) }

// Rad returns the radii.
func (x Vector) Rad() []float64 { return x.project(interval.Interval.Rad) }

// Diam returns the diameters.
func (x Vector) Diam() []float64 { return x.project(interval.Interval.Diam) }

// LB returns the lower-bound vector.
func (x Vector) LB() []float64 { return x.project(interval.Interval.LB) }

// UB returns the upper-bound vector.
func (x Vector) UB() []float64 { return x.project(interval.Interval.UB) }

// Volume returns the product of the diameters (0 for an empty box, 1 for a
// zero-dimensional one).
func (x Vector) Volume() float64 {
	if x.IsEmpty() {
		return 0
	}
	v := 1.0
	for _, c := range x {
		v *= c.Diam()
	}

	return v
}

// Perimeter returns the sum of the diameters.
func (x Vector) Perimeter() float64 {
	if x.IsEmpty() {
		return 0
	}
	p := 0.0
	for _, c := range x {
		p += c.Diam()
	}

	return p
}

// ExtrDiamIndex returns the index of the component with the smallest (min)
// or largest (!min) diameter; the lowest index wins ties. It returns -1 for
// a zero-dimensional vector.
func (x Vector) ExtrDiamIndex(min bool) int {
	best, bestD := -1, 0.0
	for i, c := range x {
		d := c.Diam()
		if best < 0 || (min && d < bestD) || (!min && d > bestD) {
			best, bestD = i, d
		}
	}

	return best
}

// MaxDiam returns the largest diameter (0 for zero dimension).
func (x Vector) MaxDiam() float64 {
	if i := x.ExtrDiamIndex(false); i >= 0 {
		return x[i].Diam()
	}

	return 0
}

// MinDiam returns the smallest diameter (0 for zero dimension).
func (x Vector) MinDiam() float64 {
	if i := x.ExtrDiamIndex(true); i >= 0 {
		return x[i].Diam()
	}

	return 0
}

// SortIndices returns the component indices sorted by increasing (min) or
// decreasing (!min) diameter, stable on ties.
func (x Vector) SortIndices(min bool) []int {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	diam := x.Diam()
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case diam[a] == diam[b]:
			return 0
		case (diam[a] < diam[b]) == min:
			return -1
		default:
			return 1
		}
	})

	return idx
}

// Hull returns the component-wise hull.
func (x Vector) Hull(y Vector) Vector {
	mustMatch("Hull", len(x), len(y))
	if x.IsEmpty() {
		return y.Clone()
	}
	if y.IsEmpty() {
		return x.Clone()
	}
	out := make(Vector, len(x))
	for i := range x {
		out[i] = x[i].Hull(y[i])
	}

	return out
}

// Inter returns x ∩ y (an empty box when some component is disjoint).
func (x Vector) Inter(y Vector) Vector {
	mustMatch("Inter", len(x), len(y))
	out := make(Vector, len(x))
	for i := range x {
		out[i] = x[i].Inter(y[i])
	}

	return out.normalize()
}

// InterInPlace narrows x to x ∩ y and reports whether x stayed non-empty.
func (x Vector) InterInPlace(y Vector) bool {
	mustMatch("InterInPlace", len(x), len(y))
	for i := range x {
		x[i] = x[i].Inter(y[i])
		if x[i].IsEmpty() {
			x.SetEmpty()
			return false
		}
	}

	return true
}

// IsSubset reports whether x ⊆ y.
func (x Vector) IsSubset(y Vector) bool {
	mustMatch("IsSubset", len(x), len(y))
	if x.IsEmpty() {
		return true
	}
	for i := range x {
		if !x[i].IsSubset(y[i]) {
			return false
		}
	}

	return true
}

// IsStrictSubset reports whether x ⊆ y and x != y.
func (x Vector) IsStrictSubset(y Vector) bool {
	return x.IsSubset(y) && !x.Equal(y)
}

// IsInteriorSubset reports whether x lies in the interior of y.
func (x Vector) IsInteriorSubset(y Vector) bool {
	mustMatch("IsInteriorSubset", len(x), len(y))
	if x.IsEmpty() {
		return true
	}
	for i := range x {
		if !x[i].IsInteriorSubset(y[i]) {
			return false
		}
	}

	return true
}

// Intersects reports whether x ∩ y is not empty.
func (x Vector) Intersects(y Vector) bool {
	mustMatch("Intersects", len(x), len(y))
	for i := range x {
		if !x[i].Intersects(y[i]) {
			return false
		}
	}

	return len(x) == 0 || !x.IsEmpty()
}

// Contains reports whether the point p lies in x.
func (x Vector) Contains(p []float64) bool {
	mustMatch("Contains", len(x), len(p))
	for i := range x {
		if !x[i].Contains(p[i]) {
			return false
		}
	}

	return true
}

// Equal reports set equality (all empty boxes of a dimension are equal).
func (x Vector) Equal(y Vector) bool {
	if len(x) != len(y) {
		return false
	}
	if x.IsEmpty() || y.IsEmpty() {
		return x.IsEmpty() == y.IsEmpty()
	}
	for i := range x {
		if !x[i].Equal(y[i]) {
			return false
		}
	}

	return true
}

// Bisect splits component i at ratio and returns two fresh boxes.
// It panics like interval.Interval.Bisect when x[i] is not bisectable.
func (x Vector) Bisect(i int, ratio float64) (Vector, Vector) {
	l, r := x[i].Bisect(ratio)
	left, right := x.Clone(), x.Clone()
	left[i], right[i] = l, r

	return left, right
}

// Inflate applies interval.Interval.Inflate component-wise.
func (x Vector) Inflate(delta, chi float64) Vector {
	out := make(Vector, len(x))
	for i := range x {
		out[i] = x[i].Inflate(delta, chi)
	}

	return out.normalize()
}

// RelDistance returns the largest component-wise relative distance.
func (x Vector) RelDistance(y Vector) float64 {
	mustMatch("RelDistance", len(x), len(y))
	m := 0.0
	for i := range x {
		m = math.Max(m, x[i].RelDistance(y[i]))
	}

	return m
}

// Diff returns boxes whose union is the closure of x \ y. The boxes are
// pairwise non-overlapping; the result is empty when x ⊆ y.
//
// Implementation:
//   - Stage 1: z = x ∩ y; if empty, x is returned as the single piece.
//   - Stage 2: for every dimension i, each piece of x[i] \ y[i] yields a box
//     whose components before i are already narrowed to z.
func (x Vector) Diff(y Vector, compact bool) []Vector {
	mustMatch("Diff", len(x), len(y))
	if x.IsEmpty() {
		return nil
	}
	z := x.Inter(y)
	if z.IsEmpty() {
		return []Vector{x.Clone()}
	}
	if compact {
		for i := range z {
			if z[i].IsDegenerated() && !x[i].IsDegenerated() {
				return []Vector{x.Clone()}
			}
		}
	}

	var out []Vector
	cur := x.Clone()
	for i := range x {
		c1, c2 := x[i].Diff(y[i], compact)
		for _, c := range []interval.Interval{c1, c2} {
			if c.IsEmpty() {
				continue
			}
			piece := cur.Clone()
			piece[i] = c
			out = append(out, piece)
		}
		cur[i] = z[i]
	}

	return out
}

// Complementary returns boxes covering the closure of Rⁿ \ x.
func (x Vector) Complementary(compact bool) []Vector {
	return New(len(x)).Diff(x, compact)
}

// String formats the box as "([a, b] ; [c, d])", or "∅" when empty.
func (x Vector) String() string {
	if x.IsEmpty() {
		return "∅"
	}
	parts := make([]string, len(x))
	for i, c := range x {
		parts[i] = c.String()
	}

	return "(" + strings.Join(parts, " ; ") + ")"
}
