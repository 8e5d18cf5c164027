// SPDX-License-Identifier: MIT

// Package ops provides factorizations and linear solvers for the matrix
// package: LU with partial pivoting, real inverses (used as preconditioners
// of interval systems) and the interval Gauss-Seidel sweep.
//
// Real-valued routines (LU, Solve, Inverse) are approximate: their output is
// only ever used as a preconditioner, and the interval routines that consume
// it (Precondition, GaussSeidel) remain sound whatever preconditioner they
// are given.
package ops
