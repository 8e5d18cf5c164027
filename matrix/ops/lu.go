// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ivlath/matrix"
)

// LUResult holds P·A = L·U packed in one matrix: L (unit lower, diagonal
// implicit) below the diagonal and U on and above it.
type LUResult struct {
	n    int
	lu   [][]float64
	Perm []int // row i of P·A is row Perm[i] of A
	Sign int   // determinant sign of P (+1 / -1)
}

// N returns the system size.
func (f *LUResult) N() int { return f.n }

// L returns the unit lower-triangular factor as a fresh Dense.
func (f *LUResult) L() *matrix.Dense {
	m, _ := matrix.NewDense(f.n, f.n)
	for i := 0; i < f.n; i++ {
		for j := 0; j < i; j++ {
			_ = m.Set(i, j, f.lu[i][j])
		}
		_ = m.Set(i, i, 1)
	}

	return m
}

// U returns the upper-triangular factor as a fresh Dense.
func (f *LUResult) U() *matrix.Dense {
	m, _ := matrix.NewDense(f.n, f.n)
	for i := 0; i < f.n; i++ {
		for j := i; j < f.n; j++ {
			_ = m.Set(i, j, f.lu[i][j])
		}
	}

	return m
}

// LU performs Doolittle LU decomposition with partial pivoting.
// Blueprint:
//
//	Stage 1 (Validate): ensure m is square.
//	Stage 2 (Prepare): copy rows, identity permutation, scale = max |a_ij|.
//	Stage 3 (Execute): for each column k pick the row with the largest
//	                   |a_ik| (i ≥ k), swap, eliminate below the pivot.
//	Stage 4 (Finalize): return the packed factors.
//
// Errors:
//   - matrix.ErrNonSquare for a non-square input.
//   - matrix.ErrSingular when a pivot is below tol·scale.
//
// Complexity: O(n³) time, O(n²) memory.
func LU(m *matrix.Dense, opts ...Option) (*LUResult, error) {
	// Stage 1: Validate input shape
	rows, cols := m.Shape()
	if rows != cols {
		return nil, fmt.Errorf("LU: non-square %dx%d: %w", rows, cols, matrix.ErrNonSquare)
	}
	o := gatherOptions(opts...)
	n := rows

	// Stage 2: working copy and scale
	a := m.RawRows()
	perm := make([]int, n)
	scale := 0.0
	for i := range a {
		perm[i] = i
		for _, v := range a[i] {
			scale = math.Max(scale, math.Abs(v))
		}
	}
	if scale == 0 {
		return nil, fmt.Errorf("LU: zero matrix: %w", matrix.ErrSingular)
	}
	threshold := o.pivotTol * scale

	// Stage 3: elimination with partial pivoting
	sign := 1
	var i, j, k, p int
	for k = 0; k < n; k++ {
		p = k
		for i = k + 1; i < n; i++ {
			if math.Abs(a[i][k]) > math.Abs(a[p][k]) {
				p = i
			}
		}
		if math.Abs(a[p][k]) <= threshold {
			return nil, fmt.Errorf("LU: pivot %d below %g: %w", k, threshold, matrix.ErrSingular)
		}
		if p != k {
			a[p], a[k] = a[k], a[p]
			perm[p], perm[k] = perm[k], perm[p]
			sign = -sign
		}
		for i = k + 1; i < n; i++ {
			a[i][k] /= a[k][k] // multiplier stored in L's slot
			l := a[i][k]
			if l == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i][j] -= l * a[k][j]
			}
		}
	}

	// Stage 4: Finalize
	return &LUResult{n: n, lu: a, Perm: perm, Sign: sign}, nil
}

// Solve returns x with A·x = b for the factored A.
//
// Errors:
//   - matrix.ErrDimensionMismatch when len(b) != N().
func (f *LUResult) Solve(b []float64) ([]float64, error) {
	if len(b) != f.n {
		return nil, fmt.Errorf("Solve: rhs %d for %dx%d: %w", len(b), f.n, f.n, matrix.ErrDimensionMismatch)
	}
	x := make([]float64, f.n)
	// forward substitution: L·y = P·b
	for i := 0; i < f.n; i++ {
		s := b[f.Perm[i]]
		for k := 0; k < i; k++ {
			s -= f.lu[i][k] * x[k]
		}
		x[i] = s
	}
	// backward substitution: U·x = y
	for i := f.n - 1; i >= 0; i-- {
		s := x[i]
		for k := i + 1; k < f.n; k++ {
			s -= f.lu[i][k] * x[k]
		}
		x[i] = s / f.lu[i][i]
	}

	return x, nil
}

// Det returns the determinant of the factored matrix.
func (f *LUResult) Det() float64 {
	d := float64(f.Sign)
	for i := 0; i < f.n; i++ {
		d *= f.lu[i][i]
	}

	return d
}

// Solve factors a and solves a·x = b in one call.
func Solve(a *matrix.Dense, b []float64, opts ...Option) ([]float64, error) {
	f, err := LU(a, opts...)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}

	return f.Solve(b)
}
