// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: ..." so logs stay greppable.
// Callers match with errors.Is; context is added with fmt.Errorf("ctx: %w").

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates non-positive requested dimensions.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	// Dense.At/Set return it; Matrix.At/Set panic with it.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrSingular is returned when no usable pivot exists during LU or
	// inversion. It is a recoverable numerical condition: callers skip the
	// step that needed the inverse.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrRagged signals rows of different lengths in a literal.
	ErrRagged = errors.New("matrix: rows have different lengths")
)
