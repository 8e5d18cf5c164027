// SPDX-License-Identifier: MIT
// Package interval: sentinel error set.
// Arithmetic never fails; these sentinels only back the panics raised on
// programmer errors (bisecting a non-bisectable interval, invalid ratio).

package interval

import "errors"

var (
	// ErrNotBisectable is raised when Bisect is called on an interval with
	// no float strictly between its bounds (see IsBisectable).
	ErrNotBisectable = errors.New("interval: interval is not bisectable")

	// ErrBadRatio is raised when a bisection ratio is outside (0, 1).
	ErrBadRatio = errors.New("interval: bisection ratio must be in (0, 1)")
)
