// SPDX-License-Identifier: MIT

package problems

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ivlath/expr"
	"github.com/katalvlaran/ivlath/system"
)

const (
	maxBroyden    = 64
	maxRosenbrock = 16
	sixHumpMin    = -1.0316284534898774
)

func builtins() []Problem {
	h := math.Sqrt(0.5)
	return []Problem{
		{
			Name:      "circle-line",
			Summary:   "x² + y² = 1, x = y",
			Kind:      Solve,
			MinN:      2,
			MaxN:      2,
			DefaultN:  2,
			Solutions: [][]float64{{-h, -h}, {h, h}},
			Build:     noDim(circleLine),
		},
		{
			Name:      "two-circles",
			Summary:   "(x - 1)² + y² = 4, (x + 2)² + y² = 9",
			Kind:      Solve,
			MinN:      2,
			MaxN:      2,
			DefaultN:  2,
			Solutions: [][]float64{{1.0 / 3, -4 * math.Sqrt2 / 3}, {1.0 / 3, 4 * math.Sqrt2 / 3}},
			Build:     noDim(twoCircles),
		},
		{
			Name:      "sqrt2",
			Summary:   "x² = 2 over [-10, 10]",
			Kind:      Solve,
			MinN:      1,
			MaxN:      1,
			DefaultN:  1,
			Solutions: [][]float64{{-math.Sqrt2}, {math.Sqrt2}},
			Build:     noDim(sqrt2),
		},
		{
			Name:     "broyden-banded",
			Summary:  "Broyden banded function over [-1, 1]^n",
			Kind:     Solve,
			MinN:     2,
			MaxN:     maxBroyden,
			DefaultN: 6,
			Build:    broydenBanded,
		},
		{
			Name:     "broyden-tridiagonal",
			Summary:  "Broyden tridiagonal function over [-1, 1]^n",
			Kind:     Solve,
			MinN:     2,
			MaxN:     maxBroyden,
			DefaultN: 4,
			Build:    broydenTridiagonal,
		},
		{
			Name:     "unit-disk",
			Summary:  "x² + y² ≤ 1 over [-1, 1]²",
			Kind:     Pave,
			MinN:     2,
			MaxN:     2,
			DefaultN: 2,
			Build:    noDim(unitDisk),
		},
		{
			Name:     "ring",
			Summary:  "1 ≤ x² + y² ≤ 4 over [-3, 3]²",
			Kind:     Pave,
			MinN:     2,
			MaxN:     2,
			DefaultN: 2,
			Build:    noDim(ring),
		},
		{
			Name:     "himmelblau",
			Summary:  "min (x² + y - 11)² + (x + y² - 7)² over [-5, 5]²",
			Kind:     Minimize,
			MinN:     2,
			MaxN:     2,
			DefaultN: 2,
			Minimum:  0,
			Build:    noDim(himmelblau),
		},
		{
			Name:     "booth",
			Summary:  "min (x + 2y - 7)² + (2x + y - 5)² over [-10, 10]²",
			Kind:     Minimize,
			MinN:     2,
			MaxN:     2,
			DefaultN: 2,
			Minimum:  0,
			Build:    noDim(booth),
		},
		{
			Name:     "six-hump-camel",
			Summary:  "min (4 - 2.1x² + x⁴/3)x² + xy + (4y² - 4)y² over [-3, 3]×[-2, 2]",
			Kind:     Minimize,
			MinN:     2,
			MaxN:     2,
			DefaultN: 2,
			Minimum:  sixHumpMin,
			Build:    noDim(sixHumpCamel),
		},
		{
			Name:     "rosenbrock",
			Summary:  "min Σ 100(x[i+1] - x[i]²)² + (1 - x[i])² over [-5, 5]^n",
			Kind:     Minimize,
			MinN:     2,
			MaxN:     maxRosenbrock,
			DefaultN: 2,
			Minimum:  0,
			Build:    rosenbrock,
		},
		{
			Name:     "disk-linear",
			Summary:  "min x + y subject to x² + y² ≤ 1",
			Kind:     Minimize,
			MinN:     2,
			MaxN:     2,
			DefaultN: 2,
			Minimum:  -math.Sqrt2,
			Build:    noDim(diskLinear),
		},
	}
}

func circleLine() (*system.System, error) {
	b := system.NewBuilder()
	x := b.Var("x", -2, 2)
	y := b.Var("y", -2, 2)
	b.Eq(expr.Add(expr.Sqr(x), expr.Sqr(y)), 1)
	b.Eq(expr.Sub(x, y), 0)

	return b.Build()
}

func twoCircles() (*system.System, error) {
	b := system.NewBuilder()
	x := b.Var("x", -3, 3)
	y := b.Var("y", -3, 3)
	b.Eq(expr.Add(expr.Sqr(expr.Sub(x, expr.C(1))), expr.Sqr(y)), 4)
	b.Eq(expr.Add(expr.Sqr(expr.Add(x, expr.C(2))), expr.Sqr(y)), 9)

	return b.Build()
}

func sqrt2() (*system.System, error) {
	b := system.NewBuilder()
	x := b.Var("x", -10, 10)
	b.Eq(expr.Sqr(x), 2)

	return b.Build()
}

// broydenBanded is f_i = x_i(2 + 5x_i²) + 1 - Σ x_j(1 + x_j) over
// j ≠ i, i-5 ≤ j ≤ i+1.
func broydenBanded(n int) (*system.System, error) {
	b := system.NewBuilder()
	xs := make([]*expr.Node, n)
	for i := range xs {
		xs[i] = b.Var(fmt.Sprintf("x%d", i+1), -1, 1)
	}
	for i := 0; i < n; i++ {
		terms := []*expr.Node{
			expr.Mul(xs[i], expr.Add(expr.C(2), expr.Mul(expr.C(5), expr.Sqr(xs[i])))),
			expr.C(1),
		}
		for j := max(0, i-5); j <= min(n-1, i+1); j++ {
			if j != i {
				terms = append(terms, expr.Neg(expr.Mul(xs[j], expr.Add(expr.C(1), xs[j]))))
			}
		}
		b.Eq(expr.Sum(terms...), 0)
	}

	return b.Build()
}

// broydenTridiagonal is f_i = (3 - 2x_i)x_i - x_{i-1} - 2x_{i+1} + 1 with
// x_0 = x_{n+1} = 0.
func broydenTridiagonal(n int) (*system.System, error) {
	b := system.NewBuilder()
	xs := make([]*expr.Node, n)
	for i := range xs {
		xs[i] = b.Var(fmt.Sprintf("x%d", i+1), -1, 1)
	}
	for i := 0; i < n; i++ {
		terms := []*expr.Node{
			expr.Mul(expr.Sub(expr.C(3), expr.Mul(expr.C(2), xs[i])), xs[i]),
			expr.C(1),
		}
		if i > 0 {
			terms = append(terms, expr.Neg(xs[i-1]))
		}
		if i < n-1 {
			terms = append(terms, expr.Mul(expr.C(-2), xs[i+1]))
		}
		b.Eq(expr.Sum(terms...), 0)
	}

	return b.Build()
}

func unitDisk() (*system.System, error) {
	b := system.NewBuilder()
	x := b.Var("x", -1, 1)
	y := b.Var("y", -1, 1)
	b.Leq(expr.Add(expr.Sqr(x), expr.Sqr(y)), 1)

	return b.Build()
}

func ring() (*system.System, error) {
	b := system.NewBuilder()
	x := b.Var("x", -3, 3)
	y := b.Var("y", -3, 3)
	b.In(expr.Add(expr.Sqr(x), expr.Sqr(y)), 1, 4)

	return b.Build()
}

func himmelblau() (*system.System, error) {
	b := system.NewBuilder()
	x := b.Var("x", -5, 5)
	y := b.Var("y", -5, 5)
	f1 := expr.Sub(expr.Add(expr.Sqr(x), y), expr.C(11))
	f2 := expr.Sub(expr.Add(x, expr.Sqr(y)), expr.C(7))
	b.Minimize(expr.Add(expr.Sqr(f1), expr.Sqr(f2)))

	return b.Build()
}

func booth() (*system.System, error) {
	b := system.NewBuilder()
	x := b.Var("x", -10, 10)
	y := b.Var("y", -10, 10)
	f1 := expr.Sub(expr.Add(x, expr.Mul(expr.C(2), y)), expr.C(7))
	f2 := expr.Sub(expr.Add(expr.Mul(expr.C(2), x), y), expr.C(5))
	b.Minimize(expr.Add(expr.Sqr(f1), expr.Sqr(f2)))

	return b.Build()
}

func sixHumpCamel() (*system.System, error) {
	b := system.NewBuilder()
	x := b.Var("x", -3, 3)
	y := b.Var("y", -2, 2)
	x2 := expr.Sqr(x)
	y2 := expr.Sqr(y)
	f := expr.Sum(
		expr.Mul(expr.C(4), x2),
		expr.Mul(expr.C(-2.1), expr.Pow(x, 4)),
		expr.Div(expr.Pow(x, 6), expr.C(3)),
		expr.Mul(x, y),
		expr.Mul(expr.C(-4), y2),
		expr.Mul(expr.C(4), expr.Pow(y, 4)),
	)
	b.Minimize(f)

	return b.Build()
}

func rosenbrock(n int) (*system.System, error) {
	b := system.NewBuilder()
	xs := make([]*expr.Node, n)
	for i := range xs {
		xs[i] = b.Var(fmt.Sprintf("x%d", i+1), -5, 5)
	}
	terms := make([]*expr.Node, 0, 2*(n-1))
	for i := 0; i+1 < n; i++ {
		terms = append(terms,
			expr.Mul(expr.C(100), expr.Sqr(expr.Sub(xs[i+1], expr.Sqr(xs[i])))),
			expr.Sqr(expr.Sub(expr.C(1), xs[i])),
		)
	}
	b.Minimize(expr.Sum(terms...))

	return b.Build()
}

func diskLinear() (*system.System, error) {
	b := system.NewBuilder()
	x := b.Var("x", -2, 2)
	y := b.Var("y", -2, 2)
	b.Leq(expr.Add(expr.Sqr(x), expr.Sqr(y)), 1)
	b.Minimize(expr.Add(x, y))

	return b.Build()
}
