package interval_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/interval"
)

const (
	samples  = 64
	trials   = 400
	seedHigh = 11
	seedLow  = 29
)

var inf = math.Inf(1)

// iv is a short constructor for test tables.
func iv(lb, ub float64) interval.Interval { return interval.New(lb, ub) }

// randInterval draws a bounded interval inside [-scale, scale].
func randInterval(r *rand.Rand, scale float64) interval.Interval {
	a := (r.Float64()*2 - 1) * scale
	b := (r.Float64()*2 - 1) * scale
	if a > b {
		a, b = b, a
	}

	return iv(a, b)
}

// randIn draws a point of x (bounds included now and then).
func randIn(r *rand.Rand, x interval.Interval) float64 {
	switch r.IntN(8) {
	case 0:
		return x.LB()
	case 1:
		return x.UB()
	}
	p := x.LB() + r.Float64()*(x.UB()-x.LB())

	return math.Min(math.Max(p, x.LB()), x.UB())
}

// requireEqualIv compares intervals as sets.
func requireEqualIv(t *testing.T, want, got interval.Interval, msgAndArgs ...any) {
	t.Helper()
	if !want.Equal(got) {
		require.Fail(t, fmt.Sprintf("want %v, got %v", want, got), msgAndArgs...)
	}
}

// requireEncloses asserts that v (a nearest-rounded sample) lies in x.
func requireEncloses(t *testing.T, x interval.Interval, v float64, format string, args ...any) {
	t.Helper()
	if math.IsNaN(v) {
		return
	}
	require.True(t, x.Contains(v), append([]any{format + ": %v not in %v"}, append(args, v, x)...)...)
}
