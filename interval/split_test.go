package interval_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/rounding"
)

func requireCovering(t *testing.T, x, left, right interval.Interval) {
	t.Helper()
	require.Equal(t, left.UB(), right.LB(), "halves must share the split point")
	requireEqualIv(t, x, left.Hull(right))
	require.True(t, left.IsStrictSubset(x), "left %v not smaller than %v", left, x)
	require.True(t, right.IsStrictSubset(x), "right %v not smaller than %v", right, x)
}

func TestBisectCovers(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(seedHigh, seedLow))
	for i := 0; i < trials; i++ {
		x := randInterval(r, 1e3)
		if !x.IsBisectable() {
			continue
		}
		ratio := 0.05 + 0.9*r.Float64()
		left, right := x.Bisect(ratio)
		requireCovering(t, x, left, right)
	}
}

func TestBisectUnbounded(t *testing.T) {
	t.Parallel()

	left, right := interval.AllReals.Bisect(0.5)
	requireEqualIv(t, iv(-inf, 0), left)
	requireEqualIv(t, iv(0, inf), right)

	left, right = interval.Pos.Bisect(0.5)
	require.Equal(t, math.MaxFloat64, left.UB())
	requireCovering(t, interval.Pos, left, right)

	left, right = iv(-inf, 3).Bisect(0.3)
	require.Equal(t, -math.MaxFloat64, left.UB())
	requireCovering(t, iv(-inf, 3), left, right)
}

func TestBisectWatchdog(t *testing.T) {
	t.Parallel()

	lb := 1.0
	ub := rounding.NextUp(rounding.NextUp(lb))
	x := iv(lb, ub)
	require.True(t, x.IsBisectable())

	// a ratio this close to 0 rounds the split point onto lb
	left, right := x.Bisect(1e-30)
	require.Equal(t, rounding.NextUp(lb), left.UB())
	requireCovering(t, x, left, right)

	tight := iv(lb, rounding.NextUp(lb))
	require.False(t, tight.IsBisectable())
	require.Panics(t, func() { tight.Bisect(0.5) })
	require.Panics(t, func() { iv(0, 1).Bisect(1) })
	require.False(t, interval.Point(3).IsBisectable())
}

func TestComplementaryAndDiff(t *testing.T) {
	t.Parallel()

	c1, c2 := iv(1, 2).Complementary(false)
	requireEqualIv(t, iv(-inf, 1), c1)
	requireEqualIv(t, iv(2, inf), c2)

	c1, c2 = interval.Pos.Complementary(false)
	requireEqualIv(t, iv(-inf, 0), c1)
	require.True(t, c2.IsEmpty())

	c1, c2 = interval.AllReals.Complementary(false)
	require.True(t, c1.IsEmpty() && c2.IsEmpty())

	c1, _ = interval.Point(4).Complementary(true)
	requireEqualIv(t, interval.AllReals, c1)

	x := iv(0, 10)
	d1, d2 := x.Diff(iv(3, 4), false)
	requireEqualIv(t, iv(0, 3), d1)
	requireEqualIv(t, iv(4, 10), d2)

	d1, d2 = x.Diff(iv(-1, 5), false)
	requireEqualIv(t, iv(5, 10), d1)
	require.True(t, d2.IsEmpty())

	d1, d2 = x.Diff(x, false)
	requireEqualIv(t, interval.Point(0), d1, "the bounds of y stay as degenerate pieces")
	requireEqualIv(t, interval.Point(10), d2)
	d1, d2 = x.Diff(x, true)
	require.True(t, d1.IsEmpty() && d2.IsEmpty())

	d1, d2 = x.Diff(iv(-5, 0), false)
	requireEqualIv(t, x, d1)
	require.True(t, d2.IsEmpty())
	d1, d2 = iv(0, 10).Diff(iv(-5, 10), false)
	requireEqualIv(t, interval.Point(10), d1)
	require.True(t, d2.IsEmpty())
	d1, _ = iv(0, 10).Diff(iv(-5, 10), true)
	require.True(t, d1.IsEmpty(), "compact drops the degenerate piece")

	d1, d2 = x.Diff(iv(10, 20), false)
	requireEqualIv(t, x, d1)
	require.True(t, d2.IsEmpty())

	d1, _ = interval.Point(3).Diff(iv(0, 5), true)
	require.True(t, d1.IsEmpty())
	d1, _ = interval.Point(3).Diff(iv(4, 5), true)
	requireEqualIv(t, interval.Point(3), d1)
}

func TestDeltaAndDistances(t *testing.T) {
	t.Parallel()

	x := iv(0, 10)
	assert.Equal(t, 7.0, x.Delta(iv(2, 5)))
	assert.InDelta(t, 0.7, x.RatioDelta(iv(2, 5)), 1e-15)
	assert.Equal(t, 10.0, x.Delta(interval.Empty()))
	assert.Equal(t, 1.0, x.RatioDelta(interval.Empty()))

	assert.Equal(t, 2.0, iv(-inf, 5).Delta(iv(-inf, 3)), "bound-wise with a shared infinite bound")
	assert.True(t, math.IsInf(interval.AllReals.Delta(iv(0, 1)), 1))
	assert.Equal(t, 1.0, interval.AllReals.RatioDelta(iv(0, 1)))
	assert.Equal(t, 0.0, interval.AllReals.RatioDelta(interval.Pos))

	assert.Equal(t, 3.0, x.Distance(iv(2, 7)))
	assert.InDelta(t, 0.3, x.RelDistance(iv(2, 7)), 1e-15)
	assert.Equal(t, 0.0, x.RelDistance(x))
}

func TestInflate(t *testing.T) {
	t.Parallel()

	x := iv(1, 3)
	y := x.Inflate(1.1, 1e-3)
	require.True(t, x.IsInteriorSubset(y))
	assert.InDelta(t, 0.899, y.LB(), 1e-12)
	assert.InDelta(t, 3.101, y.UB(), 1e-12)

	p := interval.Point(2).Inflate(1, 0.5)
	requireEqualIv(t, iv(1.5, 2.5), p)
	require.True(t, interval.Empty().Inflate(2, 1).IsEmpty())
}
