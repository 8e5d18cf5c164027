// SPDX-License-Identifier: MIT
// Package expr: sentinel error set.

package expr

import "errors"

var (
	// ErrNilExpr is returned when compiling a nil root.
	ErrNilExpr = errors.New("expr: nil expression")

	// ErrVarIndex is returned when a variable index is negative or not
	// below the declared number of variables.
	ErrVarIndex = errors.New("expr: variable index out of range")
)
