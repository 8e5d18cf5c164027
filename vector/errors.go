// SPDX-License-Identifier: MIT
// Package vector: sentinel error set.

package vector

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch signals operands of different sizes. It is raised
	// through panic: a mismatch is always a bug in the caller.
	ErrDimensionMismatch = errors.New("vector: dimension mismatch")

	// ErrIndexOutOfRange signals a component index outside [0, n).
	ErrIndexOutOfRange = errors.New("vector: index out of range")
)

// mustMatch panics when the two sizes differ.
func mustMatch(op string, n, m int) {
	if n != m {
		panic(fmt.Errorf("vector.%s(%d vs %d): %w", op, n, m, ErrDimensionMismatch))
	}
}
