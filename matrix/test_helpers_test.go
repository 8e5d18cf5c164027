package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/matrix"
)

// MustDense builds a Dense from a literal or fails the test.
func MustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err) // literal must be valid

	return m
}

// MustAt reads (i, j) or fails the test.
func MustAt(t *testing.T, m *matrix.Dense, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// ivm builds an interval matrix from [lb, ub] pairs, row by row.
func ivm(rows ...[][2]float64) *matrix.Matrix {
	m := matrix.New(len(rows), len(rows[0]))
	for i, row := range rows {
		for j, b := range row {
			m.Set(i, j, interval.New(b[0], b[1]))
		}
	}

	return m
}
