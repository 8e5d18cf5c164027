// SPDX-License-Identifier: MIT
// Package problems: sentinel errors.

package problems

import "errors"

var (
	// ErrUnknown indicates a name absent from the registry.
	ErrUnknown = errors.New("problems: unknown problem")

	// ErrDuplicate indicates a second registration under the same name.
	ErrDuplicate = errors.New("problems: duplicate problem name")

	// ErrSize indicates a dimension outside the problem's range.
	ErrSize = errors.New("problems: dimension out of range")
)
