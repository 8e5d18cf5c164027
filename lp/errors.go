// SPDX-License-Identifier: MIT
// Package lp: sentinel errors.

package lp

import "errors"

// ErrShape indicates inconsistent problem dimensions (row lengths, bound
// vectors, objective or dual size).
var ErrShape = errors.New("lp: inconsistent problem shape")
