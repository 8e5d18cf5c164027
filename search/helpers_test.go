package search_test

import (
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/expr"
	"github.com/katalvlaran/ivlath/search"
	"github.com/katalvlaran/ivlath/system"
	"github.com/katalvlaran/ivlath/vector"
)

var sqrtHalf = math.Sqrt(0.5)

func quiet() search.Option { return search.WithLogger(slog.New(slog.DiscardHandler)) }

func build(t testing.TB, b *system.Builder) *system.System {
	t.Helper()
	sys, err := b.Build()
	require.NoError(t, err)

	return sys
}

// circleLine is x² + y² = 1, x - y = 0 with solutions ±(√½, √½).
func circleLine(t testing.TB) *system.System {
	b := system.NewBuilder()
	x := b.Var("x", -2, 2)
	y := b.Var("y", -2, 2)
	b.Eq(expr.Add(expr.Sqr(x), expr.Sqr(y)), 1)
	b.Eq(expr.Sub(x, y), 0)

	return build(t, b)
}

// disk is x² + y² ≤ 1 over [-1, 1]².
func disk(t testing.TB) *system.System {
	b := system.NewBuilder()
	x := b.Var("x", -1, 1)
	y := b.Var("y", -1, 1)
	b.Leq(expr.Add(expr.Sqr(x), expr.Sqr(y)), 1)

	return build(t, b)
}

// himmelblau minimizes (x² + y - 11)² + (x + y² - 7)² over [-5, 5]²; its
// four global minima have value 0.
func himmelblau(t testing.TB) *system.System {
	b := system.NewBuilder()
	x := b.Var("x", -5, 5)
	y := b.Var("y", -5, 5)
	f1 := expr.Sub(expr.Add(expr.Sqr(x), y), expr.C(11))
	f2 := expr.Sub(expr.Add(x, expr.Sqr(y)), expr.C(7))
	b.Minimize(expr.Add(expr.Sqr(f1), expr.Sqr(f2)))

	return build(t, b)
}

// sixHumpMin is the value at the two global minimizers ±(0.0898, -0.7126).
const sixHumpMin = -1.0316284534898774

func sixHumpCamel(t testing.TB) *system.System {
	b := system.NewBuilder()
	x := b.Var("x", -3, 3)
	y := b.Var("y", -2, 2)
	b.Minimize(expr.Sum(
		expr.Mul(expr.C(4), expr.Sqr(x)),
		expr.Mul(expr.C(-2.1), expr.Pow(x, 4)),
		expr.Div(expr.Pow(x, 6), expr.C(3)),
		expr.Mul(x, y),
		expr.Mul(expr.C(-4), expr.Sqr(y)),
		expr.Mul(expr.C(4), expr.Pow(y, 4)),
	))

	return build(t, b)
}

// volume sums the volumes of the result boxes.
func volume(rs []search.Result) float64 {
	v := 0.0
	for _, r := range rs {
		v += r.Box.Volume()
	}

	return v
}

// nearestSq returns the squared distance from the origin to box.
func nearestSq(box vector.Vector) float64 {
	d := 0.0
	for _, c := range box {
		p := min(max(0, c.LB()), c.UB())
		d += p * p
	}

	return d
}

// farthestSq returns the largest squared distance from the origin to a
// point of box.
func farthestSq(box vector.Vector) float64 {
	d := 0.0
	for _, c := range box {
		p := max(math.Abs(c.LB()), math.Abs(c.UB()))
		d += p * p
	}

	return d
}
