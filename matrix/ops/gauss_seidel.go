// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/ivlath/matrix"
	"github.com/katalvlaran/ivlath/vector"
)

// Precondition returns (C·a, C·b) with C = Inverse(mid(a)).
//
// Errors:
//   - matrix.ErrSingular when mid(a) cannot be inverted; the caller should
//     skip the contraction step.
func Precondition(a *matrix.Matrix, b vector.Vector, opts ...Option) (*matrix.Matrix, vector.Vector, error) {
	c, err := MidInverse(a, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("Precondition: %w", err)
	}

	return matrix.MulDense(c, a), matrix.MulDenseVec(c, b), nil
}

// GaussSeidel runs one interval Gauss-Seidel sweep on a·x = b, narrowing x
// in place:
//
//	x_i ← x_i ∩ (b_i - Σ_{j≠i} a_ij·x_j) / a_ii
//
// Division by a diagonal containing 0 uses the two-piece quotient, so the
// sweep stays sound (and may still narrow) on non-diagonally-dominant
// systems. It returns false when x becomes empty (no solution in x).
//
// It panics with matrix.ErrDimensionMismatch on shape errors.
func GaussSeidel(a *matrix.Matrix, b, x vector.Vector) bool {
	n := a.Rows()
	if a.Cols() != n || len(b) != n || len(x) != n {
		panic(fmt.Errorf("GaussSeidel: %dx%d, b=%d, x=%d: %w", n, a.Cols(), len(b), len(x), matrix.ErrDimensionMismatch))
	}
	for i := 0; i < n; i++ {
		s := b[i]
		for j := 0; j < n; j++ {
			if j != i {
				s = s.Sub(a.At(i, j).Mul(x[j]))
			}
		}
		o2, ok := x[i].Div2Inter(s, a.At(i, i))
		x[i] = x[i].Hull(o2)
		if !ok {
			x.SetEmpty()
			return false
		}
	}

	return true
}
