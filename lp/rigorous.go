// SPDX-License-Identifier: MIT

package lp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/vector"
)

// reducedCosts returns an enclosure of c - Aᵀy, one exact dot product per
// column.
func reducedCosts(p Problem, c, y []float64) vector.Vector {
	m := p.M()
	a := make([]float64, m+1)
	b := make([]float64, m+1)
	r := make(vector.Vector, p.N())
	for j := range r {
		a[0], b[0] = c[j], 1
		for i, row := range p.Rows {
			a[i+1], b[i+1] = row[j], -y[i]
		}
		r[j] = vector.DotExact(a, b)
	}

	return r
}

// rowTerm encloses Σ yᵢ·[RowLBᵢ, RowUBᵢ].
func rowTerm(p Problem, y []float64) interval.Interval {
	s := interval.Zero
	for i, yi := range y {
		if yi == 0 {
			continue
		}
		s = s.Add(interval.Point(yi).Mul(interval.New(p.RowLB[i], p.RowUB[i])))
	}

	return s
}

func checkDual(op string, p Problem, box vector.Vector, y []float64) error {
	if len(box) != p.N() || len(y) != p.M() {
		return fmt.Errorf("lp.%s: box %d, dual %d for %dx%d problem: %w", op, len(box), len(y), p.M(), p.N(), ErrShape)
	}

	return nil
}

// RigorousBound returns a verified bound on the optimum of p over box for
// any multiplier vector y: a lower bound when minimizing, an upper bound
// when maximizing. With xᵀc = yᵀ(Ax) + (c - Aᵀy)ᵀx the bound is the
// matching end of Σ yᵢ·[RowLBᵢ, RowUBᵢ] + Σ (c - Aᵀy)ⱼ·boxⱼ, computed with
// outward rounding. The bound is valid even when y is far from optimal; it
// is merely less tight (possibly infinite). For a maximization y are the
// multipliers of the equivalent minimization of -Objective.
func RigorousBound(p Problem, box vector.Vector, y []float64) (float64, error) {
	if err := checkDual("RigorousBound", p, box, y); err != nil {
		return 0, err
	}
	c := p.Objective
	if p.Sense == Maximize {
		c = make([]float64, len(p.Objective))
		for j, v := range p.Objective {
			c[j] = -v
		}
	}
	enc := rowTerm(p, y).Add(reducedCosts(p, c, y).Dot(box))
	if enc.IsEmpty() {
		return math.Inf(1), nil
	}
	if p.Sense == Maximize {
		return -enc.LB(), nil
	}

	return enc.LB(), nil
}

// ProvesInfeasible reports whether the ray y certifies that no x in box
// satisfies RowLB ≤ Ax ≤ RowUB: every feasible x has yᵀAx in
// Σ yᵢ·[RowLBᵢ, RowUBᵢ] and in (Aᵀy)ᵀbox, so disjoint enclosures prove
// infeasibility. A false answer proves nothing.
func ProvesInfeasible(p Problem, box vector.Vector, y []float64) (bool, error) {
	if err := checkDual("ProvesInfeasible", p, box, y); err != nil {
		return false, err
	}
	zero := make([]float64, p.N())
	// reducedCosts(0, y) = -Aᵀy
	at := reducedCosts(p, zero, y).Neg()

	return rowTerm(p, y).IsDisjoint(at.Dot(box)), nil
}
