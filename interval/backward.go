// SPDX-License-Identifier: MIT

// Package interval - backward projections.
//
// A backward projection narrows the operands of y = f(x1, x2) given a
// (narrowed) enclosure of y, keeping every point of the operands that is
// consistent with some value of y. They are the reverse sweep of
// forward-backward constraint propagation (HC4-revise).
//
// Every Bwd* function narrows its operands in place and returns false as
// soon as one of them becomes empty (the constraint is infeasible on the
// current domains). Projections never enlarge an operand.

package interval

import "math"

// maxPeriods bounds the number of periods enumerated by the trigonometric
// projections; wider domains are left unchanged.
const maxPeriods = 16

func narrow(x *Interval, by Interval) bool {
	*x = x.Inter(by)
	return !x.IsEmpty()
}

// BwdAdd projects y = x1 + x2.
func BwdAdd(y Interval, x1, x2 *Interval) bool {
	return narrow(x1, y.Sub(*x2)) && narrow(x2, y.Sub(*x1))
}

// BwdSub projects y = x1 - x2.
func BwdSub(y Interval, x1, x2 *Interval) bool {
	return narrow(x1, y.Add(*x2)) && narrow(x2, x1.Sub(y))
}

// bwdMulOne narrows x from y = x·other using two-piece division.
func bwdMulOne(y, other Interval, x *Interval) bool {
	o2, ok := x.Div2Inter(y, other)
	*x = x.Hull(o2)

	return ok
}

// BwdMul projects y = x1 · x2.
func BwdMul(y Interval, x1, x2 *Interval) bool {
	return bwdMulOne(y, *x2, x1) && bwdMulOne(y, *x1, x2)
}

// BwdDiv projects y = x1 / x2, i.e. x1 = y · x2 on x2 ≠ 0.
func BwdDiv(y Interval, x1, x2 *Interval) bool {
	return narrow(x1, y.Mul(*x2)) && bwdMulOne(*x1, y, x2)
}

// BwdNeg projects y = -x.
func BwdNeg(y Interval, x *Interval) bool { return narrow(x, y.Neg()) }

// symmetric narrows x to (x ∩ r) ∪ (x ∩ -r) for r ⊆ [0, +Inf).
func symmetric(r Interval, x *Interval) bool {
	*x = x.Inter(r).Hull(x.Inter(r.Neg()))
	return !x.IsEmpty()
}

// BwdSqr projects y = x².
func BwdSqr(y Interval, x *Interval) bool {
	return symmetric(y.Inter(Pos).Sqrt(), x)
}

// BwdSqrt projects y = √x.
func BwdSqrt(y Interval, x *Interval) bool {
	y = y.Inter(Pos)
	if y.IsEmpty() {
		*x = EmptySet
		return false
	}

	return narrow(x, y.Sqr())
}

// BwdExp projects y = e^x.
func BwdExp(y Interval, x *Interval) bool {
	lg := y.Log()
	if lg.IsEmpty() {
		*x = EmptySet
		return false
	}

	return narrow(x, lg)
}

// BwdLog projects y = ln x.
func BwdLog(y Interval, x *Interval) bool { return narrow(x, y.Exp()) }

// BwdPow projects y = x^n for an integer n.
func BwdPow(y Interval, n int, x *Interval) bool {
	switch {
	case n == 0:
		if !y.Contains(1) {
			*x = EmptySet
			return false
		}

		return !x.IsEmpty()
	case n < 0:
		o1, o2 := Div2(One, y)
		return BwdPow(o1.Hull(o2), -n, x)
	case n%2 == 0:
		return symmetric(y.Inter(Pos).Root(n), x)
	default:
		return narrow(x, y.Root(n))
	}
}

// BwdAbs projects y = |x|.
func BwdAbs(y Interval, x *Interval) bool { return symmetric(y.Inter(Pos), x) }

// BwdMin projects y = min(x1, x2).
func BwdMin(y Interval, x1, x2 *Interval) bool {
	floor := Interval{lb: y.lb, ub: posInf}
	if y.IsEmpty() || !narrow(x1, floor) || !narrow(x2, floor) {
		*x1, *x2 = EmptySet, EmptySet
		return false
	}
	// whichever operand cannot reach y must leave the minimum to the other
	if x2.lb > y.ub && !narrow(x1, y) {
		return false
	}
	if x1.lb > y.ub && !narrow(x2, y) {
		return false
	}

	return true
}

// BwdMax projects y = max(x1, x2).
func BwdMax(y Interval, x1, x2 *Interval) bool {
	n1, n2 := x1.Neg(), x2.Neg()
	ok := BwdMin(y.Neg(), &n1, &n2)
	*x1, *x2 = n1.Neg(), n2.Neg()

	return ok
}

// periods returns the integer range [k0, k1] of shifts k·period whose
// translate of a branch contained in [-period, period] may meet x, and
// false when x is too wide for enumeration.
func periods(x Interval, period float64) (k0, k1 float64, ok bool) {
	if x.IsUnbounded() {
		return 0, 0, false
	}
	k0 = math.Floor(x.lb/period) - 1
	k1 = math.Ceil(x.ub/period) + 1
	if k1-k0 > maxPeriods || math.IsInf(k0, 0) || math.IsInf(k1, 0) {
		return 0, 0, false
	}

	return k0, k1, true
}

// bwdPeriodic narrows x to the union over k of x ∩ (branch + k·period).
func bwdPeriodic(branches []Interval, period Interval, x *Interval) bool {
	k0, k1, ok := periods(*x, period.lb)
	if !ok {
		return !x.IsEmpty()
	}
	res := EmptySet
	for k := k0; k <= k1; k++ {
		shift := period.MulScalar(k)
		for _, b := range branches {
			res = res.Hull(x.Inter(b.Add(shift)))
		}
	}
	*x = res

	return !x.IsEmpty()
}

// BwdSin projects y = sin x.
func BwdSin(y Interval, x *Interval) bool {
	a := y.Asin()
	if a.IsEmpty() {
		*x = EmptySet
		return false
	}

	return bwdPeriodic([]Interval{a, Pi.Sub(a)}, TwoPi, x)
}

// BwdCos projects y = cos x.
func BwdCos(y Interval, x *Interval) bool {
	a := y.Acos()
	if a.IsEmpty() {
		*x = EmptySet
		return false
	}

	return bwdPeriodic([]Interval{a, a.Neg()}, TwoPi, x)
}

// BwdTan projects y = tan x.
func BwdTan(y Interval, x *Interval) bool {
	return bwdPeriodic([]Interval{y.Atan()}, Pi, x)
}

// BwdAtan projects y = arctan x.
func BwdAtan(y Interval, x *Interval) bool {
	y = y.Inter(Interval{lb: -HalfPi.ub, ub: HalfPi.ub})
	if y.IsEmpty() {
		*x = EmptySet
		return false
	}

	return narrow(x, y.Tan())
}

// BwdSinh projects y = sinh x.
func BwdSinh(y Interval, x *Interval) bool { return narrow(x, y.Asinh()) }

// BwdCosh projects y = cosh x.
func BwdCosh(y Interval, x *Interval) bool {
	a := y.Acosh()
	if a.IsEmpty() {
		*x = EmptySet
		return false
	}

	return symmetric(a, x)
}

// BwdTanh projects y = tanh x.
func BwdTanh(y Interval, x *Interval) bool {
	a := y.Atanh()
	if a.IsEmpty() {
		*x = EmptySet
		return false
	}

	return narrow(x, a)
}

// BwdAtan2 projects theta = atan2(y, x) conservatively: only the signs of
// y and x implied by the quadrants theta can reach are enforced.
func BwdAtan2(theta Interval, y, x *Interval) bool {
	theta = theta.Inter(Interval{lb: -Pi.ub, ub: Pi.ub})
	if theta.IsEmpty() {
		*y, *x = EmptySet, EmptySet
		return false
	}
	if theta.lb > 0 && !narrow(y, Pos) {
		return false
	}
	if theta.ub < 0 && !narrow(y, Neg) {
		return false
	}
	if theta.lb > -HalfPi.lb && theta.ub < HalfPi.lb && !narrow(x, Pos) {
		return false
	}
	if (theta.lb > HalfPi.ub || theta.ub < -HalfPi.ub) && !narrow(x, Neg) {
		return false
	}

	return !x.IsEmpty() && !y.IsEmpty()
}
