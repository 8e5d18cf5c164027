// SPDX-License-Identifier: MIT

// Package contractor implements operators that narrow a box without losing
// any point consistent with a constraint.
//
// Every contractor reports one of three outcomes through Status: the box
// was narrowed, left unchanged, or proven empty (infeasible). Empty is
// ordinary control flow: the box is set empty and composite contractors
// stop immediately.
//
// Building blocks:
//   - Compose, Fixpoint, Union, Identity, Projection, Counting: combinators;
//   - HC4Revise and HC4: forward-backward propagation over expressions;
//   - Newton, Krawczyk, Inflating: interval Newton methods on square
//     equality systems, preconditioned by the inverse of the midpoint
//     Jacobian;
//   - LinearRelax and PolytopeHull: X-Taylor linear relaxation solved by an
//     external LP backend, with rigorous post-processing of its answers.
//
// Numerical degeneracy (singular preconditioner, non-optimal LP) never
// aborts: the step is skipped, the box is left unchanged and the event is
// reported to an Escalation, which logs a first occurrence as a warning and
// repeats as errors.
//
// Contractors keep working storage and are not safe for concurrent use;
// Clone returns an independent copy for another goroutine.
package contractor
