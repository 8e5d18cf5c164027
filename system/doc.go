// SPDX-License-Identifier: MIT

// Package system describes a numerical constraint system: named variables
// with domains, constraints f(x) ∘ rhs over compiled expressions, and an
// optional objective to minimize.
//
// Systems are assembled with a Builder, which validates the whole
// description at Build time and reports problems through sentinel errors:
//
//	b := system.NewBuilder()
//	x := b.Var("x", -10, 10)
//	y := b.Var("y", -10, 10)
//	b.Eq(expr.Add(expr.Sqr(x), expr.Sqr(y)), 1)
//	b.Eq(expr.Sub(x, y), 0)
//	sys, err := b.Build()
//
// A built System is immutable and safe for concurrent use.
package system
