package interval_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/interval"
)

type unaryCase struct {
	name  string
	op    func(interval.Interval) interval.Interval
	point func(float64) float64
	scale float64
	dom   interval.Interval
}

// TestUnarySoundnessSampling checks f(p) ∈ F(x) for random boxes x and
// points p ∈ x, for every elementary function on its natural domain.
func TestUnarySoundnessSampling(t *testing.T) {
	t.Parallel()

	cases := []unaryCase{
		{"sqr", interval.Interval.Sqr, func(v float64) float64 { return v * v }, 1e3, interval.AllReals},
		{"abs", interval.Interval.Abs, math.Abs, 1e3, interval.AllReals},
		{"exp", interval.Interval.Exp, math.Exp, 50, interval.AllReals},
		{"log", interval.Interval.Log, math.Log, 1e3, iv(1e-300, inf)},
		{"sqrt", interval.Interval.Sqrt, math.Sqrt, 1e3, interval.Pos},
		{"sin", interval.Interval.Sin, math.Sin, 20, interval.AllReals},
		{"cos", interval.Interval.Cos, math.Cos, 20, interval.AllReals},
		{"tan", interval.Interval.Tan, math.Tan, 1.4, interval.AllReals},
		{"asin", interval.Interval.Asin, math.Asin, 1, interval.AllReals},
		{"acos", interval.Interval.Acos, math.Acos, 1, interval.AllReals},
		{"atan", interval.Interval.Atan, math.Atan, 1e3, interval.AllReals},
		{"sinh", interval.Interval.Sinh, math.Sinh, 30, interval.AllReals},
		{"cosh", interval.Interval.Cosh, math.Cosh, 30, interval.AllReals},
		{"tanh", interval.Interval.Tanh, math.Tanh, 10, interval.AllReals},
		{"asinh", interval.Interval.Asinh, math.Asinh, 1e3, interval.AllReals},
		{"acosh", interval.Interval.Acosh, math.Acosh, 1e3, iv(1, inf)},
		{"atanh", interval.Interval.Atanh, math.Atanh, 1, iv(-0.999, 0.999)},
		{"cube", func(x interval.Interval) interval.Interval { return x.Pow(3) },
			func(v float64) float64 { return v * v * v }, 1e2, interval.AllReals},
		{"pow4", func(x interval.Interval) interval.Interval { return x.Pow(4) },
			func(v float64) float64 { s := v * v; return s * s }, 1e2, interval.AllReals},
		{"root3", func(x interval.Interval) interval.Interval { return x.Root(3) },
			math.Cbrt, 1e3, interval.AllReals},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(seedHigh, uint64(i)))
			for k := 0; k < trials; k++ {
				x := randInterval(r, tc.scale).Inter(tc.dom)
				if x.IsEmpty() {
					continue
				}
				fx := tc.op(x)
				for s := 0; s < samples; s++ {
					p := randIn(r, x)
					requireEncloses(t, fx, tc.point(p), "%s(%v) at %v", tc.name, x, p)
				}
			}
		})
	}
}

func TestBinarySoundnessSampling(t *testing.T) {
	t.Parallel()

	type binaryCase struct {
		name  string
		op    func(a, b interval.Interval) interval.Interval
		point func(a, b float64) float64
	}
	cases := []binaryCase{
		{"add", interval.Interval.Add, func(a, b float64) float64 { return a + b }},
		{"sub", interval.Interval.Sub, func(a, b float64) float64 { return a - b }},
		{"mul", interval.Interval.Mul, func(a, b float64) float64 { return a * b }},
		{"div", interval.Interval.Div, func(a, b float64) float64 { return a / b }},
		{"min", interval.Min, math.Min},
		{"max", interval.Max, math.Max},
		{"atan2", interval.Atan2, math.Atan2},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(seedLow, uint64(i)))
			for k := 0; k < trials; k++ {
				x, y := randInterval(r, 1e2), randInterval(r, 1e2)
				fxy := tc.op(x, y)
				for s := 0; s < samples; s++ {
					a, b := randIn(r, x), randIn(r, y)
					if tc.name == "div" && b == 0 {
						continue
					}
					requireEncloses(t, fxy, tc.point(a, b), "%s(%v, %v) at (%v, %v)", tc.name, x, y, a, b)
				}
			}
		})
	}
}

func TestExactSpecialValues(t *testing.T) {
	t.Parallel()

	requireEqualIv(t, interval.One, interval.Zero.Exp())
	requireEqualIv(t, interval.Zero, interval.One.Log())
	requireEqualIv(t, iv(2, 3), iv(4, 9).Sqrt())
	requireEqualIv(t, iv(-8, 27), iv(-2, 3).Pow(3))
	requireEqualIv(t, iv(0, 16), iv(-2, 1).Pow(4))
	requireEqualIv(t, interval.One, iv(-5, 5).Pow(0))
	requireEqualIv(t, iv(0.25, 0.5), iv(2, 4).Pow(-1))

	// domain restriction
	require.True(t, iv(-2, -1).Log().IsEmpty())
	require.True(t, iv(-2, -1).Sqrt().IsEmpty())
	require.True(t, iv(2, 3).Asin().IsEmpty())
	require.True(t, iv(-3, 0.5).Acosh().IsEmpty())
	require.True(t, interval.One.Atanh().IsEmpty())

	lg := iv(0, 1).Log()
	assert.True(t, math.IsInf(lg.LB(), -1))
	assert.Equal(t, 0.0, lg.UB())
	requireEqualIv(t, iv(0, 2), iv(-3, 4).Sqrt())
}

func TestRootIsTight(t *testing.T) {
	t.Parallel()

	r := interval.Point(27).Root(3)
	require.True(t, r.Contains(3))
	require.LessOrEqual(t, r.Diam(), 1e-15)

	r = interval.Point(-8).Root(3)
	require.True(t, r.Contains(-2))

	r = iv(-1, 16).Root(4)
	require.True(t, r.Contains(0) && r.Contains(2))
	require.LessOrEqual(t, r.UB(), 2+1e-15)
	require.True(t, iv(1, 2).Root(0).IsEmpty())
}

func TestTrigExtrema(t *testing.T) {
	t.Parallel()

	s := iv(0, interval.Pi.UB()).Sin()
	assert.Equal(t, 1.0, s.UB(), "maximum at π/2")
	assert.LessOrEqual(t, s.LB(), 0.0)

	c := iv(-1, 1).Cos()
	assert.Equal(t, 1.0, c.UB(), "maximum at 0")
	assert.InDelta(t, math.Cos(1), c.LB(), 1e-15)

	requireEqualIv(t, iv(-1, 1), iv(-4, 4).Sin())
	requireEqualIv(t, iv(-1, 1), iv(0, 7).Cos())
	requireEqualIv(t, iv(-1, 1), interval.AllReals.Sin())

	requireEqualIv(t, interval.AllReals, iv(1.5, 1.7).Tan(), "asymptote at π/2")
	tn := iv(0, 1).Tan()
	assert.Equal(t, 0.0, tn.LB())
	assert.InDelta(t, math.Tan(1), tn.UB(), 1e-15)

	at := interval.AllReals.Atan()
	assert.Equal(t, -interval.HalfPi.UB(), at.LB())
	assert.Equal(t, interval.HalfPi.UB(), at.UB())

	// a huge degenerate argument must not hang the critical-point scan
	huge := interval.Point(1e300).Sin()
	require.False(t, huge.IsEmpty())
}

func TestAtan2Quadrants(t *testing.T) {
	t.Parallel()

	require.True(t, interval.Atan2(interval.One, interval.One).Contains(math.Pi/4))
	require.True(t, interval.Atan2(interval.Zero, interval.Point(-1)).Contains(math.Pi))
	require.True(t, interval.Atan2(interval.One, interval.Point(-1)).Contains(3*math.Pi/4))
	require.True(t, interval.Atan2(interval.Point(-1), interval.Point(-1)).Contains(-3*math.Pi/4))
	require.True(t, interval.Atan2(interval.Point(-1), interval.Zero).Contains(-math.Pi/2))

	// crossing the branch cut yields the full range
	full := interval.Atan2(iv(-1, 1), iv(-2, -1))
	require.True(t, full.Contains(-math.Pi) && full.Contains(math.Pi))

	right := interval.Atan2(iv(-1, 1), iv(0, 2))
	require.True(t, right.IsSubset(iv(-interval.HalfPi.UB(), interval.HalfPi.UB())))

	require.True(t, interval.Atan2(interval.Zero, interval.Zero).IsEmpty())
}
