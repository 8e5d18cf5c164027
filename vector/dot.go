// SPDX-License-Identifier: MIT

// Package vector - exact dot product.
//
// DotExact accumulates the products of two point vectors without any
// rounding error, using math/big at a precision large enough to hold the sum
// of any float64 products, and rounds the exact result once in each
// direction. It is the reference oracle for rounded accumulations and the
// rigorous residual evaluation used by LP post-processing.

package vector

import (
	"math"
	"math/big"

	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/rounding"
)

// exactPrec spans the exponent range of a product of two doubles
// (2^-2148 .. 2^2048) with headroom for carries of long sums.
const exactPrec = 4400

// DotExact returns the tightest interval enclosing Σ a[i]·b[i], computed
// exactly. Terms with a zero factor are dropped (0·Inf counts as 0); an
// infinite sum is enclosed by the half-line beyond ±MaxFloat64 and a NaN
// input or an Inf - Inf sum yields AllReals.
func DotExact(a, b []float64) interval.Interval {
	mustMatch("DotExact", len(a), len(b))
	for i := range a {
		if !finite(a[i]) || !finite(b[i]) {
			return dotNonFinite(a, b)
		}
	}

	sum := new(big.Float).SetPrec(exactPrec)
	prod := new(big.Float).SetPrec(exactPrec)
	fa := new(big.Float).SetPrec(exactPrec)
	fb := new(big.Float).SetPrec(exactPrec)
	for i := range a {
		fa.SetFloat64(a[i])
		fb.SetFloat64(b[i])
		prod.Mul(fa, fb)
		sum.Add(sum, prod)
	}

	return roundOut(sum)
}

func finite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

func dotNonFinite(a, b []float64) interval.Interval {
	var fa, fb []float64
	pos, neg := false, false
	for i := range a {
		switch {
		case math.IsNaN(a[i]) || math.IsNaN(b[i]):
			return interval.AllReals
		case a[i] == 0 || b[i] == 0:
			continue
		case finite(a[i]) && finite(b[i]):
			fa, fb = append(fa, a[i]), append(fb, b[i])
		case (a[i] > 0) == (b[i] > 0):
			pos = true
		default:
			neg = true
		}
	}
	switch {
	case pos && neg:
		return interval.AllReals
	case pos:
		return interval.New(math.MaxFloat64, math.Inf(1))
	case neg:
		return interval.New(math.Inf(-1), -math.MaxFloat64)
	}

	return DotExact(fa, fb)
}

// roundOut converts an exact big.Float to the tightest double interval.
func roundOut(v *big.Float) interval.Interval {
	f, acc := v.Float64()
	switch acc {
	case big.Below: // f < v
		if math.IsInf(f, -1) {
			return interval.New(-math.Inf(1), -math.MaxFloat64)
		}

		return interval.New(f, rounding.NextUp(f))
	case big.Above: // f > v
		if math.IsInf(f, 1) {
			return interval.New(math.MaxFloat64, math.Inf(1))
		}

		return interval.New(rounding.NextDown(f), f)
	default:
		return interval.Point(f)
	}
}

// Residual returns an enclosure of b - A·x for a dense row-major A (rows of
// length len(x)), each row computed with DotExact.
func Residual(rows [][]float64, x, b []float64) Vector {
	mustMatch("Residual", len(rows), len(b))
	out := make(Vector, len(rows))
	for i, row := range rows {
		out[i] = interval.Point(b[i]).Sub(DotExact(row, x))
	}

	return out
}
