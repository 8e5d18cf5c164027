// SPDX-License-Identifier: MIT

// Package rounding provides directed rounding for float64 arithmetic.
//
// Every outward-rounded interval operation brackets the exact real result of
// a floating-point operation between a value rounded toward -Inf and a value
// rounded toward +Inf. Go exposes no portable way to switch the hardware
// rounding mode, so this package computes directed roundings from the
// round-to-nearest result and its exact error term:
//
//   - Addition/subtraction: Knuth's TwoSum gives the exact rounding error.
//   - Multiplication: math.FMA(a, b, -p) gives the exact product error.
//   - Division and square root: math.FMA yields the exact remainder.
//
// The sign of the error term tells on which side of the rounded value the
// true result lies; when the error is non-zero the result is stepped one
// unit in the last place in the requested direction. Close to the underflow
// threshold, where error terms are no longer representable, the result is
// stepped outward unconditionally (sound, one ulp loose).
//
// Two surfaces are offered:
//
//	AddDown/AddUp, MulDown/MulUp, ...   stateless primitives, safe for concurrent use
//	Control                             explicit rounding-mode capability with scoped restore
//
// A Control carries a mode the way an FPU control word would, but it is an
// ordinary value: each goroutine owns its own Control, so parallel search
// workers never share rounding state.
//
// Transcendental functions from package math are not correctly rounded.
// Widen pushes such results outward by a fixed number of ulps; the kernel's
// soundness relies on the documented precondition that math's elementary
// functions err by less than TranscendentalULP units in the last place.
package rounding
