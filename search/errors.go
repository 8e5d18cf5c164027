// SPDX-License-Identifier: MIT
// Package search: sentinel errors.

package search

import "errors"

var (
	// ErrDimension indicates a box whose size differs from the number of
	// variables of the system.
	ErrDimension = errors.New("search: box dimension does not match the system")

	// ErrNoGoal indicates an Optimizer built on a system without objective.
	ErrNoGoal = errors.New("search: system has no objective")

	// ErrWorkers indicates a Parallel call with fewer than one worker.
	ErrWorkers = errors.New("search: need at least one worker")
)
