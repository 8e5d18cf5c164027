// Package matrix_test contains unit tests for the Dense and interval Matrix types.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/matrix"
)

func TestNewDenseValidation(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	r, c := m.Shape()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	require.Equal(t, 0.0, MustAt(t, m, 1, 2)) // zero-initialized

	_, err = matrix.NewDenseFrom([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrRagged)
}

func TestDenseAccessorsReturnErrors(t *testing.T) {
	t.Parallel()

	m := MustDense(t, [][]float64{{1, 2}, {3, 4}})
	_, err := m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)

	loose, err := matrix.NewDense(1, 1, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, loose.Set(0, 0, math.Inf(-1)))
}

func TestDenseAlgebra(t *testing.T) {
	t.Parallel()

	a := MustDense(t, [][]float64{{1, 2}, {3, 4}})
	b := MustDense(t, [][]float64{{0, 1}, {1, 0}})

	p, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 1}, {4, 3}}, p.RawRows())

	v, err := a.MulVec([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, v)

	assert.Equal(t, [][]float64{{1, 3}, {2, 4}}, a.Transpose().RawRows())

	_, err = a.Mul(MustDense(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = a.MulVec([]float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	id, err := matrix.Identity(2)
	require.NoError(t, err)
	q, err := a.Mul(id)
	require.NoError(t, err)
	assert.Equal(t, a.RawRows(), q.RawRows())

	c := a.Clone()
	require.NoError(t, c.Set(0, 0, 9))
	assert.Equal(t, 1.0, MustAt(t, a, 0, 0), "Clone is deep")
	assert.Equal(t, "[1, 2]\n[3, 4]\n", a.String())
}
