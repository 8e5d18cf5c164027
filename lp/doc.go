// SPDX-License-Identifier: MIT

// Package lp defines the contract between the contractors and an external
// linear-programming backend, plus the rigorous post-processing that turns
// an approximate LP answer into a verified bound.
//
// The simplex itself is not part of this module: any type implementing
// Solver can be plugged in. Its answers are never trusted as such.
// RigorousBound recomputes a safe bound on the optimum from the returned
// dual multipliers, and ProvesInfeasible checks a dual ray, both with
// directed rounding (Neumaier and Shcherbina, "Safe bounds in linear and
// mixed-integer programming", Math. Prog. 99, 2004).
package lp
