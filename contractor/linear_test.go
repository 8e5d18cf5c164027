package contractor_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/contractor"
	"github.com/katalvlaran/ivlath/expr"
	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/lp"
	"github.com/katalvlaran/ivlath/system"
)

// halfPlane is x + y ≤ 1 over [0, 1]².
func halfPlane(t *testing.T) *system.System {
	t.Helper()
	b := system.NewBuilder()
	x := b.Var("x", 0, 1)
	y := b.Var("y", 0, 1)
	b.Leq(expr.Add(x, y), 1)
	sys, err := b.Build()
	require.NoError(t, err)

	return sys
}

// rowDual answers Optimal with multiplier -1 on row 0 when maximizing
// (x + y ≤ 1 bounds each variable from above) and no multiplier otherwise.
var rowDual = lp.SolverFunc(func(_ context.Context, p lp.Problem) (lp.Result, error) {
	y := make([]float64, p.M())
	if p.Sense == lp.Maximize {
		y[0] = -1
	}
	return lp.Result{Status: lp.Optimal, Dual: y}, nil
})

func TestLinearizeRows(t *testing.T) {
	t.Parallel()

	r := contractor.NewLinearRelax(halfPlane(t))
	rows, lb, ub := r.Linearize(box([2]float64{0.5, 1}, [2]float64{0.25, 1}))
	require.Len(t, rows, 2, "one row per corner; the lower side is infinite")
	for i := range rows {
		assert.Equal(t, []float64{1, 1}, rows[i])
		assert.True(t, math.IsInf(lb[i], -1))
		assert.Equal(t, 1.0, ub[i])
	}

	rows, _, _ = r.Linearize(box([2]float64{0, math.Inf(1)}, [2]float64{0, 1}))
	require.Empty(t, rows)
}

func TestLinearizeIsSound(t *testing.T) {
	t.Parallel()

	sys := circleLine(t)
	r := contractor.NewLinearRelax(sys)
	b := box([2]float64{0.5, 0.9}, [2]float64{0.6, 0.8})
	rows, lb, ub := r.Linearize(b)
	require.Len(t, rows, 8, "two corners, two sides, two equalities")
	for i, row := range rows {
		v := row[0]*sqrtHalf + row[1]*sqrtHalf
		require.LessOrEqual(t, lb[i], v+1e-12, "row %d", i)
		require.GreaterOrEqual(t, ub[i], v-1e-12, "row %d", i)
	}
}

func TestPolytopeHullTightens(t *testing.T) {
	t.Parallel()

	c := contractor.NewPolytopeHull(halfPlane(t), rowDual)
	b := box([2]float64{0.5, 1}, [2]float64{0.25, 1})
	require.Equal(t, contractor.Narrowed, c.Contract(b))
	require.True(t, b[0].Equal(interval.New(0.5, 0.75)), "x: %v", b[0])
	require.True(t, b[1].Equal(interval.New(0.25, 0.5)), "y: %v", b[1])
	require.Equal(t, 2, c.Nb())
}

func TestPolytopeHullProvesInfeasible(t *testing.T) {
	t.Parallel()

	ray := lp.SolverFunc(func(_ context.Context, p lp.Problem) (lp.Result, error) {
		y := make([]float64, p.M())
		y[0] = 1
		return lp.Result{Status: lp.Infeasible, Dual: y}, nil
	})
	c := contractor.NewPolytopeHull(halfPlane(t), ray)
	b := box([2]float64{0.6, 1}, [2]float64{0.6, 1})
	require.Equal(t, contractor.Empty, c.Contract(b))
	require.True(t, b.IsEmpty())
}

func TestPolytopeHullFallsBack(t *testing.T) {
	t.Parallel()

	status := func(st lp.Status) lp.SolverFunc {
		return func(context.Context, lp.Problem) (lp.Result, error) { return lp.Result{Status: st}, nil }
	}
	fail := func(context.Context, lp.Problem) (lp.Result, error) { return lp.Result{}, context.DeadlineExceeded }

	tests := []struct {
		name   string
		solver lp.SolverFunc
		want   error
	}{
		{name: "timeout", solver: status(lp.Timeout), want: contractor.ErrLPStatus},
		{name: "infeasible without ray", solver: status(lp.Infeasible), want: contractor.ErrLPStatus},
		{name: "backend error", solver: fail, want: context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			esc := quiet()
			c := contractor.NewPolytopeHull(halfPlane(t), tt.solver, contractor.WithEscalation(esc))
			b := box([2]float64{0.5, 1}, [2]float64{0.25, 1})
			require.Equal(t, contractor.Unchanged, c.Contract(b))
			require.True(t, b.Equal(box([2]float64{0.5, 1}, [2]float64{0.25, 1})))

			diags := esc.Diagnostics()
			require.Len(t, diags, 1)
			assert.Equal(t, "PolytopeHull", diags[0].Source)
			assert.Equal(t, 4, diags[0].Count, "one report per bound")
			assert.True(t, errors.Is(diags[0].Err, tt.want))
			assert.True(t, esc.Escalated())
		})
	}
}

func TestPolytopeHullPassesDeadline(t *testing.T) {
	t.Parallel()

	var sawDeadline bool
	probe := lp.SolverFunc(func(ctx context.Context, p lp.Problem) (lp.Result, error) {
		_, sawDeadline = ctx.Deadline()
		return rowDual(ctx, p)
	})
	c := contractor.NewPolytopeHull(halfPlane(t), probe, contractor.WithLPTimeout(time.Second))
	c.Contract(box([2]float64{0.5, 1}, [2]float64{0.25, 1}))
	require.True(t, sawDeadline)
}
