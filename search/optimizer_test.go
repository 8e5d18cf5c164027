package search_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/expr"
	"github.com/katalvlaran/ivlath/search"
	"github.com/katalvlaran/ivlath/system"
)

func TestOptimizerHimmelblau(t *testing.T) {
	t.Parallel()

	sys := himmelblau(t)
	o, err := search.NewOptimizer(sys, quiet(),
		search.WithAbsPrec(1e-5),
		search.WithRelPrec(0),
		search.WithPrec(1e-9),
		search.WithMaxCells(200000))
	require.NoError(t, err)
	rep, err := o.Minimize(context.Background(), sys.Domain)
	require.NoError(t, err)

	require.Equal(t, search.Optimal, rep.Status, "stats %+v", rep.Stats)
	require.LessOrEqual(t, rep.Uplo, 0.0)
	require.GreaterOrEqual(t, rep.Loup, 0.0)
	require.LessOrEqual(t, rep.Loup-rep.Uplo, 1e-5)
	require.NotNil(t, rep.Point)
	require.True(t, sys.Domain.Contains(rep.Point))
	require.LessOrEqual(t, sys.Goal.EvalPoint(rep.Point).LB(), rep.Loup)
	require.Equal(t, rep.Loup, o.Loup())
}

func TestOptimizerSixHumpCamelConverges(t *testing.T) {
	t.Parallel()

	// flat valleys around two minimizers: the natural extension alone
	// leaves thousands of tiny cells with lower bounds below the minimum
	sys := sixHumpCamel(t)
	o, err := search.NewOptimizer(sys, quiet(),
		search.WithAbsPrec(1e-6),
		search.WithRelPrec(0),
		search.WithMaxCells(50000))
	require.NoError(t, err)
	rep, err := o.Minimize(context.Background(), sys.Domain)
	require.NoError(t, err)

	require.Equal(t, search.Optimal, rep.Status, "stats %+v", rep.Stats)
	require.LessOrEqual(t, rep.Uplo, sixHumpMin+1e-9)
	require.GreaterOrEqual(t, rep.Loup, sixHumpMin-1e-9)
	require.LessOrEqual(t, rep.Loup-rep.Uplo, 1e-6)
}

func TestOptimizerMonotonicGoal(t *testing.T) {
	t.Parallel()

	// x + y increases in both variables: the root collapses onto its corner
	b := system.NewBuilder()
	x := b.Var("x", 1, 2)
	y := b.Var("y", 0, 3)
	b.Minimize(expr.Add(x, y))
	sys := build(t, b)

	o, err := search.NewOptimizer(sys, quiet(), search.WithAbsPrec(1e-9), search.WithRelPrec(0))
	require.NoError(t, err)
	rep, err := o.Minimize(context.Background(), sys.Domain)
	require.NoError(t, err)

	require.Equal(t, search.Optimal, rep.Status, "stats %+v", rep.Stats)
	require.Zero(t, rep.Stats.Bisections)
	require.Equal(t, 1.0, rep.Loup)
	require.Equal(t, 1.0, rep.Uplo)
	require.Equal(t, []float64{1, 0}, rep.Point)
}

func TestOptimizerMinimumOnBoundary(t *testing.T) {
	t.Parallel()

	// -x² is concave: the minimum sits on the far end of the domain
	b := system.NewBuilder()
	x := b.Var("x", -1, 2)
	b.Minimize(expr.Neg(expr.Sqr(x)))
	sys := build(t, b)

	o, err := search.NewOptimizer(sys, quiet(),
		search.WithAbsPrec(1e-6),
		search.WithRelPrec(0),
		search.WithMaxCells(10000))
	require.NoError(t, err)
	rep, err := o.Minimize(context.Background(), sys.Domain)
	require.NoError(t, err)

	require.Equal(t, search.Optimal, rep.Status, "stats %+v", rep.Stats)
	require.LessOrEqual(t, rep.Uplo, -4.0)
	require.GreaterOrEqual(t, rep.Loup, -4.0)
	require.InDelta(t, 2, rep.Point[0], 1e-3)
	require.Positive(t, rep.Stats.Pruned)
}

func TestOptimizerConstrained(t *testing.T) {
	t.Parallel()

	// min x + y over the unit disk is -√2 at -(√½, √½)
	b := system.NewBuilder()
	x := b.Var("x", -2, 2)
	y := b.Var("y", -2, 2)
	b.Leq(expr.Add(expr.Sqr(x), expr.Sqr(y)), 1)
	b.Minimize(expr.Add(x, y))
	sys := build(t, b)

	o, err := search.NewOptimizer(sys, quiet(),
		search.WithAbsPrec(1e-4),
		search.WithRelPrec(0),
		search.WithMaxCells(200000))
	require.NoError(t, err)
	rep, err := o.Minimize(context.Background(), sys.Domain)
	require.NoError(t, err)

	want := -math.Sqrt2
	require.Equal(t, search.Optimal, rep.Status, "stats %+v", rep.Stats)
	require.LessOrEqual(t, rep.Uplo, want+1e-12)
	require.GreaterOrEqual(t, rep.Loup, want-1e-12)
	require.Less(t, rep.Loup-want, 2e-4)
	require.True(t, sys.IsFeasiblePoint(rep.Point))
}

func TestOptimizerUnsatisfiable(t *testing.T) {
	t.Parallel()

	b := system.NewBuilder()
	x := b.Var("x", -1, 1)
	b.Leq(expr.Sqr(x), -1)
	b.Minimize(x)
	sys := build(t, b)

	o, err := search.NewOptimizer(sys, quiet())
	require.NoError(t, err)
	rep, err := o.Minimize(context.Background(), sys.Domain)
	require.NoError(t, err)
	require.Equal(t, search.Unsatisfiable, rep.Status)
	require.True(t, math.IsInf(rep.Loup, 1))
	require.Nil(t, rep.Point)
	require.Equal(t, 1, rep.Stats.Infeasible)
}

func TestOptimizerStopped(t *testing.T) {
	t.Parallel()

	sys := himmelblau(t)
	o, err := search.NewOptimizer(sys, quiet(), search.WithMaxCells(3))
	require.NoError(t, err)
	rep, err := o.Minimize(context.Background(), sys.Domain)
	require.NoError(t, err)
	require.Equal(t, search.Stopped, rep.Status)
	require.Equal(t, search.CellLimit, rep.Stats.Stop)
	require.NotEmpty(t, rep.Pending)
	require.Len(t, rep.Pending, rep.Stats.Pending)
	require.LessOrEqual(t, rep.Uplo, 0.0)
	require.LessOrEqual(t, rep.Uplo, rep.Loup)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err = o.Minimize(ctx, sys.Domain)
	require.NoError(t, err)
	require.Equal(t, search.Cancelled, rep.Stats.Stop)
	require.Len(t, rep.Pending, 1)
}

func TestOptimizerMisuse(t *testing.T) {
	t.Parallel()

	_, err := search.NewOptimizer(disk(t))
	require.ErrorIs(t, err, search.ErrNoGoal)

	o, err := search.NewOptimizer(himmelblau(t), quiet())
	require.NoError(t, err)
	_, err = o.Minimize(context.Background(), nil)
	require.ErrorIs(t, err, search.ErrDimension)

	require.Panics(t, func() { search.WithAbsPrec(-1) })
	require.Panics(t, func() { search.WithRelPrec(math.NaN()) })
	require.Panics(t, func() { search.WithSamples(-1) })
}
