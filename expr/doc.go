// SPDX-License-Identifier: MIT

// Package expr implements expression DAGs over interval arguments.
//
// Expressions are built from the constructor functions (X, C, Add, Mul,
// Sin, ...). A node may be shared by several parents; sharing is preserved
// when an expression is compiled into a Func, which stores its nodes in
// topological order (children first, root last).
//
// A Func supports:
//
//   - Eval / Forward: natural interval extension of the expression;
//   - Backward: forward-backward projection (HC4-revise) narrowing a box so
//     that the expression's value lies in a given range. A variable occurring
//     several times is narrowed by the intersection of all its occurrences;
//   - Gradient: reverse-mode interval adjoints, an enclosure of ∇f over a box.
//
// A Func is immutable after compilation and safe for concurrent use; the
// per-call working storage is the caller-provided Scratch.
package expr
