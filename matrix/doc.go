// SPDX-License-Identifier: MIT

// Package matrix provides the two matrix types used by the solver:
//
//   - Dense: a real row-major matrix (midpoints, preconditioners, LP rows).
//     Public accessors return sentinel errors instead of panicking.
//   - Matrix: a row-major matrix of intervals (Jacobians, Gauss-Seidel
//     systems). Its products are sound enclosures of the corresponding real
//     products; dimension mismatches are programmer errors and panic.
//
// Factorizations and inverses live in the ops subpackage.
//
// Complexity quicksheet:
//   - NewDense / New: O(r*c); At/Set: O(1); Mul: O(r*k*c); MulVec: O(r*c).
package matrix
