// SPDX-License-Identifier: MIT
// Package config: sentinel errors.

package config

import "errors"

// ErrInvalid indicates a configuration value outside its domain. Validate
// joins one wrapped ErrInvalid per offending key.
var ErrInvalid = errors.New("config: invalid value")
