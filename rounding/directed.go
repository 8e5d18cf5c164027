// SPDX-License-Identifier: MIT

package rounding

import "math"

// TranscendentalULP is the number of ulps by which results of package math
// elementary functions are widened. Soundness of every transcendental
// enclosure assumes math errs by strictly less than this amount.
const TranscendentalULP = 2

// tiny is the magnitude below which error-free transformations of products,
// quotients and square roots may underflow; results there are stepped
// outward unconditionally.
const tiny = 0x1p-960

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// NextDown returns the largest float64 strictly below x (-Inf stays -Inf).
func NextDown(x float64) float64 { return math.Nextafter(x, negInf) }

// NextUp returns the smallest float64 strictly above x (+Inf stays +Inf).
func NextUp(x float64) float64 { return math.Nextafter(x, posInf) }

func isFinite(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func sqrt(a float64) float64 { return math.Sqrt(a) }

// overflowDown maps a spurious +Inf (finite operands) to MaxFloat64.
func overflowDown(r float64, finite bool) float64 {
	if finite && math.IsInf(r, 1) {
		return math.MaxFloat64
	}

	return r
}

// overflowUp maps a spurious -Inf (finite operands) to -MaxFloat64.
func overflowUp(r float64, finite bool) float64 {
	if finite && math.IsInf(r, -1) {
		return -math.MaxFloat64
	}

	return r
}

// twoSumErr returns the exact error e = (a+b) - s of s = fl(a+b).
// Knuth's branch-free TwoSum; exact for all finite inputs without overflow.
func twoSumErr(a, b, s float64) float64 {
	bb := s - a
	return (a - (s - bb)) + (b - bb)
}

// AddDown returns a+b rounded toward -Inf.
func AddDown(a, b float64) float64 {
	s := a + b
	if !isFinite(s) {
		return overflowDown(s, isFinite(a) && isFinite(b))
	}
	if twoSumErr(a, b, s) < 0 {
		return NextDown(s)
	}

	return s
}

// AddUp returns a+b rounded toward +Inf.
func AddUp(a, b float64) float64 {
	s := a + b
	if !isFinite(s) {
		return overflowUp(s, isFinite(a) && isFinite(b))
	}
	if twoSumErr(a, b, s) > 0 {
		return NextUp(s)
	}

	return s
}

// SubDown returns a-b rounded toward -Inf.
func SubDown(a, b float64) float64 { return AddDown(a, -b) }

// SubUp returns a-b rounded toward +Inf.
func SubUp(a, b float64) float64 { return AddUp(a, -b) }

// MulDown returns a*b rounded toward -Inf.
// 0*Inf yields NaN exactly as IEEE multiplication does; interval code
// resolves that case before calling.
func MulDown(a, b float64) float64 {
	p := a * b
	if math.IsNaN(p) {
		return p
	}
	if math.IsInf(p, 0) {
		return overflowDown(p, isFinite(a) && isFinite(b))
	}
	if a == 0 || b == 0 {
		return p
	}
	if math.Abs(p) < tiny {
		return NextDown(p)
	}
	if math.FMA(a, b, -p) < 0 {
		return NextDown(p)
	}

	return p
}

// MulUp returns a*b rounded toward +Inf.
func MulUp(a, b float64) float64 {
	p := a * b
	if math.IsNaN(p) {
		return p
	}
	if math.IsInf(p, 0) {
		return overflowUp(p, isFinite(a) && isFinite(b))
	}
	if a == 0 || b == 0 {
		return p
	}
	if math.Abs(p) < tiny {
		return NextUp(p)
	}
	if math.FMA(a, b, -p) > 0 {
		return NextUp(p)
	}

	return p
}

// divSide reports the position of the exact quotient a/b relative to
// q = fl(a/b): -1 below, +1 above, 0 exact. ok is false when the remainder
// may be inexact (underflow range).
func divSide(a, b, q float64) (side int, ok bool) {
	if math.Abs(q) < tiny || math.Abs(a) < tiny {
		return 0, false
	}
	r := math.FMA(-q, b, a) // a - q*b, exact
	switch {
	case r == 0:
		return 0, true
	case (r < 0) != (b < 0):
		return -1, true
	default:
		return 1, true
	}
}

// DivDown returns a/b rounded toward -Inf.
func DivDown(a, b float64) float64 {
	q := a / b
	if math.IsNaN(q) {
		return q
	}
	if math.IsInf(q, 0) {
		return overflowDown(q, isFinite(a) && isFinite(b) && b != 0)
	}
	if a == 0 || math.IsInf(b, 0) {
		return q
	}
	side, ok := divSide(a, b, q)
	if !ok || side < 0 {
		return NextDown(q)
	}

	return q
}

// DivUp returns a/b rounded toward +Inf.
func DivUp(a, b float64) float64 {
	q := a / b
	if math.IsNaN(q) {
		return q
	}
	if math.IsInf(q, 0) {
		return overflowUp(q, isFinite(a) && isFinite(b) && b != 0)
	}
	if a == 0 || math.IsInf(b, 0) {
		return q
	}
	side, ok := divSide(a, b, q)
	if !ok || side > 0 {
		return NextUp(q)
	}

	return q
}

// SqrtDown returns sqrt(a) rounded toward -Inf (NaN for a<0).
func SqrtDown(a float64) float64 {
	s := math.Sqrt(a)
	if !isFinite(s) || s == 0 {
		return s
	}
	if a < tiny {
		return math.Max(0, NextDown(s))
	}
	if math.FMA(-s, s, a) < 0 {
		return NextDown(s)
	}

	return s
}

// SqrtUp returns sqrt(a) rounded toward +Inf (NaN for a<0).
func SqrtUp(a float64) float64 {
	s := math.Sqrt(a)
	if !isFinite(s) {
		return s
	}
	if s == 0 {
		return s
	}
	if a < tiny {
		return NextUp(s)
	}
	if math.FMA(-s, s, a) > 0 {
		return NextUp(s)
	}

	return s
}

// WidenDown steps x toward -Inf by k ulps. -Inf and NaN are returned as is.
func WidenDown(x float64, k int) float64 {
	for i := 0; i < k && !math.IsInf(x, -1) && !math.IsNaN(x); i++ {
		x = NextDown(x)
	}

	return x
}

// WidenUp steps x toward +Inf by k ulps. +Inf and NaN are returned as is.
func WidenUp(x float64, k int) float64 {
	for i := 0; i < k && !math.IsInf(x, 1) && !math.IsNaN(x); i++ {
		x = NextUp(x)
	}

	return x
}

// Widen turns the nearest-rounded results lo, hi of a library function
// into a sound enclosure by pushing them outward TranscendentalULP ulps.
func Widen(lo, hi float64) (float64, float64) {
	return WidenDown(lo, TranscendentalULP), WidenUp(hi, TranscendentalULP)
}
