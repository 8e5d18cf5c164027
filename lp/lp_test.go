package lp_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/lp"
	"github.com/katalvlaran/ivlath/vector"
)

// sumProblem is min x + y s.t. 1 ≤ x + y ≤ 3, x, y ∈ [0, 2].
func sumProblem() lp.Problem {
	return lp.Problem{
		Rows:      [][]float64{{1, 1}},
		RowLB:     []float64{1},
		RowUB:     []float64{3},
		VarLB:     []float64{0, 0},
		VarUB:     []float64{2, 2},
		Objective: []float64{1, 1},
	}
}

var unitBox = vector.NewFromBounds([][2]float64{{0, 2}, {0, 2}})

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, sumProblem().Validate())

	p := sumProblem()
	p.VarUB = p.VarUB[:1]
	require.ErrorIs(t, p.Validate(), lp.ErrShape)

	p = sumProblem()
	p.Rows = [][]float64{{1}}
	require.ErrorIs(t, p.Validate(), lp.ErrShape)

	p = sumProblem()
	p.RowLB = []float64{math.NaN()}
	require.ErrorIs(t, p.Validate(), lp.ErrShape)
}

func TestRigorousBoundExactDual(t *testing.T) {
	t.Parallel()

	b, err := lp.RigorousBound(sumProblem(), unitBox, []float64{1})
	require.NoError(t, err)
	require.Equal(t, 1.0, b)
}

func TestRigorousBoundApproximateDual(t *testing.T) {
	t.Parallel()

	for _, y := range []float64{0.9, 0.999999, 1.1, 0, -3} {
		b, err := lp.RigorousBound(sumProblem(), unitBox, []float64{y})
		require.NoError(t, err)
		assert.LessOrEqual(t, b, 1.0, "dual %v", y)
	}

	b, err := lp.RigorousBound(sumProblem(), unitBox, []float64{0.9})
	require.NoError(t, err)
	assert.Greater(t, b, 0.89)
}

func TestRigorousBoundMaximize(t *testing.T) {
	t.Parallel()

	p := sumProblem()
	p.Sense = lp.Maximize
	b, err := lp.RigorousBound(p, unitBox, []float64{-1})
	require.NoError(t, err)
	require.Equal(t, 3.0, b)

	b, err = lp.RigorousBound(p, unitBox, []float64{0})
	require.NoError(t, err)
	require.Equal(t, 4.0, b, "box bound alone")
}

func TestRigorousBoundUnboundedBox(t *testing.T) {
	t.Parallel()

	box := vector.NewFromBounds([][2]float64{{0, math.Inf(1)}, {0, 2}})
	b, err := lp.RigorousBound(sumProblem(), box, []float64{0.5})
	require.NoError(t, err)
	assert.LessOrEqual(t, b, 1.0)
	assert.False(t, math.IsNaN(b))
}

func TestProvesInfeasible(t *testing.T) {
	t.Parallel()

	p := sumProblem()
	p.RowLB, p.RowUB = []float64{5}, []float64{6}

	ok, err := lp.ProvesInfeasible(p, unitBox, []float64{1})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = lp.ProvesInfeasible(p, unitBox, []float64{0})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = lp.ProvesInfeasible(sumProblem(), unitBox, []float64{1})
	require.NoError(t, err)
	require.False(t, ok, "a feasible problem is never certified infeasible")
}

func TestShapeErrors(t *testing.T) {
	t.Parallel()

	_, err := lp.RigorousBound(sumProblem(), unitBox, []float64{1, 2})
	require.ErrorIs(t, err, lp.ErrShape)
	_, err = lp.ProvesInfeasible(sumProblem(), vector.New(3), []float64{1})
	require.ErrorIs(t, err, lp.ErrShape)
}

func TestSolverFunc(t *testing.T) {
	t.Parallel()

	var s lp.Solver = lp.SolverFunc(func(ctx context.Context, p lp.Problem) (lp.Result, error) {
		return lp.Result{Status: lp.Optimal, Value: 1, Dual: []float64{1}}, ctx.Err()
	})
	res, err := s.Optimize(context.Background(), sumProblem())
	require.NoError(t, err)
	require.Equal(t, lp.Optimal, res.Status)
	require.Equal(t, "optimal", res.Status.String())
	require.Equal(t, "max-iter", lp.MaxIter.String())
}
