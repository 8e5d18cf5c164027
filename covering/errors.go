// SPDX-License-Identifier: MIT
// Package covering: sentinel errors.

package covering

import "errors"

var (
	// ErrNotFound indicates a run id absent from the store.
	ErrNotFound = errors.New("covering: run not found")

	// ErrFormat indicates malformed covering text or stored data.
	ErrFormat = errors.New("covering: malformed input")
)
