// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
)

// Exit codes. Runs that stop early on a budget still exit with ExitSuccess
// after printing their partial results.
const (
	ExitSuccess = 0 // results printed
	ExitFailure = 1 // runtime failure (store, output)
	ExitMisuse  = 2 // bad arguments, flags or configuration
)

// ExitError carries the exit code of a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error returns the message, followed by the cause when there is one.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the cause.
func (e *ExitError) Unwrap() error { return e.Err }

func misuse(message string, err error) *ExitError {
	return &ExitError{Code: ExitMisuse, Message: message, Err: err}
}

func failure(message string, err error) *ExitError {
	return &ExitError{Code: ExitFailure, Message: message, Err: err}
}

// GetExitCode returns the exit code for err. Errors without a code come
// from cobra's argument and flag parsing and count as misuse.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitMisuse
}
