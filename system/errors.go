// SPDX-License-Identifier: MIT
// Package system: sentinel errors.
//
// Callers branch with errors.Is; Build attaches the offending variable or
// constraint through %w wrapping.

package system

import (
	"errors"
	"fmt"
)

// ErrNoVariables indicates a system without any variable.
var ErrNoVariables = errors.New("system: no variables")

// ErrArity indicates a constraint or objective that references a variable
// the system does not declare, or that has a missing argument.
var ErrArity = errors.New("system: expression arity mismatch")

// ErrBadDomain indicates a variable domain with lo > hi or a NaN bound.
var ErrBadDomain = errors.New("system: invalid variable domain")

// ErrDuplicateVar indicates two variables declared with the same name.
var ErrDuplicateVar = errors.New("system: duplicate variable name")

// ErrBadRelation indicates an unknown relation or an empty right-hand side.
var ErrBadRelation = errors.New("system: invalid relation")

// systemErrorf prefixes err with the method and a formatted detail.
func systemErrorf(method, format string, err error, args ...any) error {
	return fmt.Errorf("system.%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
