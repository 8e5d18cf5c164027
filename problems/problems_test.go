package problems_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/problems"
	"github.com/katalvlaran/ivlath/search"
	"github.com/katalvlaran/ivlath/system"
	"github.com/katalvlaran/ivlath/vector"
)

func quiet() search.Option { return search.WithLogger(slog.New(slog.DiscardHandler)) }

// near reports whether pt lies within tol of box.
func near(box vector.Vector, pt []float64, tol float64) bool {
	for i, x := range box {
		if pt[i] < x.LB()-tol || pt[i] > x.UB()+tol {
			return false
		}
	}

	return true
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "solve", problems.Solve.String())
	assert.Equal(t, "minimize", problems.Minimize.String())
	assert.Equal(t, "Kind(7)", problems.Kind(7).String())
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := problems.NewRegistry()
	p := problems.Problem{
		Name:     "line",
		Kind:     problems.Solve,
		MinN:     1,
		MaxN:     3,
		DefaultN: 2,
		Build: func(n int) (*system.System, error) {
			b := system.NewBuilder()
			for i := 0; i < n; i++ {
				b.Var(string(rune('a'+i)), -1, 1)
			}
			return b.Build()
		},
	}
	require.NoError(t, r.Register(p))
	require.ErrorIs(t, r.Register(p), problems.ErrDuplicate)
	require.ErrorIs(t, r.Register(problems.Problem{Name: "nil"}), problems.ErrUnknown)

	got, err := r.Get("line")
	require.NoError(t, err)
	sys, err := got.System(0)
	require.NoError(t, err)
	assert.Equal(t, 2, sys.N())
	sys, err = got.System(3)
	require.NoError(t, err)
	assert.Equal(t, 3, sys.N())
	_, err = got.System(4)
	require.ErrorIs(t, err, problems.ErrSize)

	_, err = r.Get("circle")
	require.ErrorIs(t, err, problems.ErrUnknown)
	assert.Equal(t, []string{"line"}, r.Names())
	assert.Len(t, r.All(problems.Solve), 1)
	assert.Empty(t, r.All(problems.Pave))
	assert.Len(t, r.All(-1), 1)
}

func TestBuiltinsBuild(t *testing.T) {
	t.Parallel()

	reg := problems.Default()
	require.Same(t, reg, problems.Default())
	names := reg.Names()
	require.Contains(t, names, "circle-line")
	require.Contains(t, names, "broyden-banded")
	require.Contains(t, names, "himmelblau")
	require.Contains(t, names, "rosenbrock")
	require.Contains(t, names, "unit-disk")

	for _, p := range reg.All(-1) {
		sys, err := p.System(0)
		require.NoError(t, err, p.Name)
		assert.Equal(t, p.DefaultN, sys.N(), p.Name)
		assert.NotEmpty(t, p.Summary, p.Name)
		switch p.Kind {
		case problems.Solve:
			assert.True(t, sys.IsSquare(), p.Name)
			assert.Nil(t, sys.Goal, p.Name)
		case problems.Pave:
			assert.Empty(t, sys.Equalities(), p.Name)
		case problems.Minimize:
			assert.NotNil(t, sys.Goal, p.Name)
		}
		for _, pt := range p.Solutions {
			for i, c := range sys.Constraints {
				assert.InDelta(t, c.RHS.Mid(), c.F.EvalPoint(pt).Mid(), 1e-12, "%s residual %d", p.Name, i)
			}
		}
	}

	p, err := reg.Get("broyden-banded")
	require.NoError(t, err)
	sys, err := p.System(12)
	require.NoError(t, err)
	assert.Equal(t, 12, sys.M())
	_, err = p.System(1)
	require.ErrorIs(t, err, problems.ErrSize)
}

func TestSolveTabulated(t *testing.T) {
	t.Parallel()

	for _, p := range problems.Default().All(problems.Solve) {
		if p.Solutions == nil {
			continue
		}
		t.Run(p.Name, func(t *testing.T) {
			t.Parallel()
			sys, err := p.System(0)
			require.NoError(t, err)
			s, err := search.New(sys, quiet())
			require.NoError(t, err)
			rep, err := s.Solve(context.Background(), sys.Domain)
			require.NoError(t, err)
			require.True(t, rep.Complete())

			sols := rep.Filter(search.Solution)
			require.Len(t, sols, len(p.Solutions))
			for _, pt := range p.Solutions {
				hits := 0
				for _, r := range sols {
					if near(r.Box, pt, 1e-9) {
						hits++
					}
				}
				require.Equal(t, 1, hits, "solution %v", pt)
			}
		})
	}
}

func TestSolveBroyden(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"broyden-banded", "broyden-tridiagonal"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p, err := problems.Default().Get(name)
			require.NoError(t, err)
			sys, err := p.System(0)
			require.NoError(t, err)
			s, err := search.New(sys, quiet(), search.WithMaxCells(100000))
			require.NoError(t, err)
			rep, err := s.Solve(context.Background(), sys.Domain)
			require.NoError(t, err)
			require.True(t, rep.Complete())
			for _, r := range rep.Filter(search.Solution) {
				require.Less(t, r.Box.MaxDiam(), 1e-6)
			}
		})
	}
}

func TestMinimizeKnownMinimum(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"himmelblau", "booth", "disk-linear", "six-hump-camel"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p, err := problems.Default().Get(name)
			require.NoError(t, err)
			sys, err := p.System(0)
			require.NoError(t, err)
			o, err := search.NewOptimizer(sys, quiet(),
				search.WithAbsPrec(1e-4),
				search.WithRelPrec(0),
				search.WithMaxCells(200000))
			require.NoError(t, err)
			rep, err := o.Minimize(context.Background(), sys.Domain)
			require.NoError(t, err)
			require.Equal(t, search.Optimal, rep.Status, "stats %+v", rep.Stats)
			assert.LessOrEqual(t, rep.Uplo, p.Minimum+1e-9)
			assert.GreaterOrEqual(t, rep.Loup, p.Minimum-1e-9)
			assert.LessOrEqual(t, rep.Loup-rep.Uplo, 1e-4)
		})
	}
}
