// Package ops_test covers LU with pivoting, inverses and the interval
// Gauss-Seidel sweep.
package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/matrix"
	"github.com/katalvlaran/ivlath/matrix/ops"
	"github.com/katalvlaran/ivlath/vector"
)

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

func TestLUNeedsPivoting(t *testing.T) {
	t.Parallel()

	// a zero leading entry breaks Doolittle without pivoting
	a := mustDense(t, [][]float64{{0, 1}, {2, 3}})
	f, err := ops.LU(a)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, f.Perm)
	assert.Equal(t, -1, f.Sign)
	assert.InDelta(t, -2.0, f.Det(), 1e-15)

	// P·A == L·U
	lu, err := f.L().Mul(f.U())
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 3}, {0, 1}}, lu.RawRows())

	x, err := f.Solve([]float64{1, 5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, x, 1e-15)
}

func TestSingularAndShapeErrors(t *testing.T) {
	t.Parallel()

	_, err := ops.LU(mustDense(t, [][]float64{{1, 2}, {2, 4}}))
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, err = ops.Inverse(mustDense(t, [][]float64{{0, 0}, {0, 0}}))
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, err = ops.LU(mustDense(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	// a loose tolerance turns an ill-conditioned matrix into a singular one
	ill := mustDense(t, [][]float64{{1, 1}, {1, 1 + 1e-9}})
	_, err = ops.LU(ill)
	require.NoError(t, err)
	_, err = ops.LU(ill, ops.WithPivotTolerance(1e-6))
	require.ErrorIs(t, err, matrix.ErrSingular)

	require.Panics(t, func() { ops.WithPivotTolerance(-1) })
}

func TestInverse(t *testing.T) {
	t.Parallel()

	a := mustDense(t, [][]float64{{4, 7}, {2, 6}})
	inv, err := ops.Inverse(a)
	require.NoError(t, err)
	p, err := a.Mul(inv)
	require.NoError(t, err)
	rows := p.RawRows()
	assert.InDeltaSlice(t, []float64{1, 0}, rows[0], 1e-14)
	assert.InDeltaSlice(t, []float64{0, 1}, rows[1], 1e-14)

	x, err := ops.Solve(a, []float64{11, 8})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, x, 1e-14)
}

func TestGaussSeidelContractsAndKeepsSolution(t *testing.T) {
	t.Parallel()

	// [4 1; 1 3]·x = [1; 2] has the solution (1/11, 7/11)
	a := matrix.FromDense(mustDense(t, [][]float64{{4, 1}, {1, 3}}))
	b := vector.FromPoint([]float64{1, 2})
	x := vector.NewFromBounds([][2]float64{{-10, 10}, {-10, 10}})

	for k := 0; k < 30; k++ {
		require.True(t, ops.GaussSeidel(a, b, x))
	}
	assert.True(t, x[0].Contains(1.0/11), "x0=%v", x[0])
	assert.True(t, x[1].Contains(7.0/11), "x1=%v", x[1])
	assert.Less(t, x.MaxDiam(), 1e-12)

	// no solution inside the box
	far := vector.NewFromBounds([][2]float64{{5, 6}, {5, 6}})
	require.False(t, ops.GaussSeidel(a, b, far))
	require.True(t, far.IsEmpty())
}

func TestPreconditionedGaussSeidel(t *testing.T) {
	t.Parallel()

	a := matrix.FromDense(mustDense(t, [][]float64{{1, 2}, {3, 1}}))
	b := vector.FromPoint([]float64{3, 4}) // solution (1, 1)
	pa, pb, err := ops.Precondition(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, pa.At(0, 0).Mid(), 1e-14)
	assert.InDelta(t, 0.0, pa.At(0, 1).Mid(), 1e-14)

	x := vector.NewFromBounds([][2]float64{{-5, 5}, {-5, 5}})
	for k := 0; k < 5; k++ {
		require.True(t, ops.GaussSeidel(pa, pb, x))
	}
	require.True(t, x.Contains([]float64{1, 1}))
	require.Less(t, x.MaxDiam(), 1e-10)

	zeroDiag := matrix.New(2, 2)
	zeroDiag.Set(0, 1, interval.One)
	zeroDiag.Set(1, 0, interval.One)
	_, _, err = ops.Precondition(matrix.New(2, 2), b)
	require.ErrorIs(t, err, matrix.ErrSingular)
	y := vector.NewFromBounds([][2]float64{{-1, 1}, {-1, 1}})
	require.True(t, ops.GaussSeidel(zeroDiag, vector.FromPoint([]float64{0.5, 0.5}), y), "zero diagonal is handled by Div2")
}
