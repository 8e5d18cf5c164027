// SPDX-License-Identifier: MIT
// Package bisector: sentinel errors.

package bisector

import "errors"

// ErrNoBisectableVariable indicates that every variable of the box is
// narrower than its precision (or degenerate).
var ErrNoBisectableVariable = errors.New("bisector: no bisectable variable")
