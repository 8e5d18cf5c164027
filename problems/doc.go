// SPDX-License-Identifier: MIT

// Package problems is a registry of named benchmark systems: equation
// systems to solve, sets to pave and functions to minimize. The command
// line driver, example tests and the integration tests draw their inputs
// from it.
//
// Scalable problems take a dimension; the others ignore it. Every entry
// records what is known about its answer (the solutions or the global
// minimum) so that callers can check a run against it.
package problems
