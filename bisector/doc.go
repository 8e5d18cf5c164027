// SPDX-License-Identifier: MIT

// Package bisector chooses the variable and split point used to bisect a
// cell.
//
// Strategies:
//   - LargestFirst: the widest variable, lowest index on ties;
//   - RoundRobin: the variable after the one the parent was split on, with
//     the last variable carried as a cell property;
//   - SmearMax, SmearSum, SmearMaxRelative: the variable with the largest
//     impact |∂f/∂xᵢ|·diam(xᵢ) over the constraints (and the objective),
//     aggregated by max, by sum, or by max of row-normalized impacts.
//
// Every strategy skips variables narrower than their precision and returns
// ErrNoBisectableVariable when none remains; the search then treats the
// cell as a boundary box.
package bisector
