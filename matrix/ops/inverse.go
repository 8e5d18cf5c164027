// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/ivlath/matrix"
)

// Inverse returns the inverse of the square matrix m.
// Blueprint:
//
//	Stage 1 (Decompose): P·A = L·U with partial pivoting.
//	Stage 2 (Execute): for each identity column eᵢ, solve A·x = eᵢ.
//	Stage 3 (Finalize): assemble columns into the inverse and return.
//
// Errors:
//   - matrix.ErrNonSquare, matrix.ErrSingular (wrapped).
//
// Complexity: O(n³) time, O(n²) memory.
func Inverse(m *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	// Stage 1: LU decomposition
	f, err := LU(m, opts...)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}

	// Stage 2: Compute each column of the inverse
	n := f.N()
	inv, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}
	e := make([]float64, n)
	for col := 0; col < n; col++ {
		clear(e)
		e[col] = 1
		x, err := f.Solve(e)
		if err != nil {
			return nil, fmt.Errorf("Inverse: %w", err)
		}
		for i := 0; i < n; i++ {
			if err = inv.Set(i, col, x[i]); err != nil {
				// overflow in a nearly singular system
				return nil, fmt.Errorf("Inverse: %w: %w", matrix.ErrSingular, err)
			}
		}
	}

	// Stage 3: Return computed inverse
	return inv, nil
}

// MidInverse returns Inverse(mid(m)), the standard preconditioner of an
// interval system.
func MidInverse(m *matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	if m.Rows() != m.Cols() {
		return nil, fmt.Errorf("MidInverse: non-square %dx%d: %w", m.Rows(), m.Cols(), matrix.ErrNonSquare)
	}
	if m.IsEmpty() {
		return nil, fmt.Errorf("MidInverse: empty matrix: %w", matrix.ErrSingular)
	}

	return Inverse(m.Mid(), opts...)
}
