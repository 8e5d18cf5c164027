// SPDX-License-Identifier: MIT

// Package interval implements verified interval arithmetic over float64.
//
// An Interval [lb, ub] is a closed set of reals. Every operation returns an
// enclosure: for any real points chosen in the operands, the exact real
// result of the operation lies inside the returned interval. Lower bounds are
// rounded toward -Inf and upper bounds toward +Inf (see package rounding),
// and every case analysis aims for the tightest enclosure that outward
// rounding allows.
//
// The empty set is represented canonically as [+Inf, -Inf] and is absorbing:
// any operation with an empty operand yields the empty set. No arithmetic
// operation panics or returns an error; invalid inputs (lb > ub, lb == +Inf,
// ub == -Inf, NaN bounds) construct the empty set.
//
// The package also provides:
//
//   - the elementary functions (Exp, Log, Sqrt, Pow, Sin, Cos, Tan, Atan2,
//     hyperbolic and inverse functions) extended to intervals by monotonicity
//     case analysis;
//   - two-piece division (Div2, Div2Inter) for divisors containing zero;
//   - set operations (Hull, Inter, Diff, Complementary) and bisection with a
//     split-point watchdog;
//   - backward projections (Bwd*) that narrow operands given a narrowed
//     result, the building block of forward-backward constraint propagation.
//
// Interval is a small value type; pass it by value.
package interval
