// SPDX-License-Identifier: MIT
// Package contractor: sentinel errors.

package contractor

import "errors"

var (
	// ErrNotSquare indicates a Newton-type contractor built on a system
	// whose equalities do not form a square system.
	ErrNotSquare = errors.New("contractor: equalities do not form a square system")

	// ErrLPStatus reports an LP answer that cannot be used (timeout,
	// iteration limit, unbounded, unknown, or an unverifiable infeasibility).
	ErrLPStatus = errors.New("contractor: unusable LP status")

	// ErrUndefined reports a function that cannot be evaluated at the
	// midpoint of the box (outside its domain).
	ErrUndefined = errors.New("contractor: function undefined at midpoint")
)
