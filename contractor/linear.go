// SPDX-License-Identifier: MIT

package contractor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/lp"
	"github.com/katalvlaran/ivlath/system"
	"github.com/katalvlaran/ivlath/vector"
)

// LinearRelax builds the X-Taylor corner relaxation of a system: for each
// constraint l ≤ f(x) ≤ u and each of the two extreme corners c of the box,
// the mean-value form f(x) ∈ f(c) + ∇f(box)·(x - c) yields one linear row
// per finite side. Every point of the box satisfying the constraints
// satisfies every row.
type LinearRelax struct {
	sys    *system.System
	images []interval.Interval
}

// NewLinearRelax returns the relaxation of sys. Reads WithEpsH.
func NewLinearRelax(sys *system.System, opts ...Option) *LinearRelax {
	o := gatherOptions(opts...)
	images := make([]interval.Interval, sys.M())
	for i, c := range sys.Constraints {
		images[i] = c.Image(o.epsH)
	}

	return &LinearRelax{sys: sys, images: images}
}

// Linearize returns the rows lb ≤ rows·x ≤ ub of the relaxation on box.
// Unbounded boxes yield no rows.
func (r *LinearRelax) Linearize(box vector.Vector) (rows [][]float64, lb, ub []float64) {
	if box.IsEmpty() || box.IsUnbounded() {
		return nil, nil, nil
	}
	corners := [2][]float64{box.LB(), box.UB()}
	for i, c := range r.sys.Constraints {
		img := r.images[i]
		g := c.F.Gradient(box)
		for k, corner := range corners {
			fc := c.F.EvalPoint(corner)
			if fc.IsEmpty() {
				continue
			}
			// below bounds f from below, above from above; at the lower
			// corner x - c ≥ 0, at the upper corner x - c ≤ 0
			below, above := g.LB(), g.UB()
			if k == 1 {
				below, above = above, below
			}
			if row, rhs, ok := taylorRow(below, corner, interval.Point(img.UB()).Sub(interval.Point(fc.LB()))); ok {
				rows, lb, ub = append(rows, row), append(lb, math.Inf(-1)), append(ub, rhs.UB())
			}
			if row, rhs, ok := taylorRow(above, corner, interval.Point(img.LB()).Sub(interval.Point(fc.UB()))); ok {
				rows, lb, ub = append(rows, row), append(lb, rhs.LB()), append(ub, math.Inf(1))
			}
		}
	}

	return rows, lb, ub
}

// taylorRow returns coef and an enclosure of off + coef·corner, the
// right-hand side of coef·x against off + coef·corner. ok is false when a
// coefficient or the offset is infinite.
func taylorRow(coef, corner []float64, off interval.Interval) ([]float64, interval.Interval, bool) {
	if off.IsEmpty() || off.IsUnbounded() {
		return nil, interval.EmptySet, false
	}
	for _, v := range coef {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, interval.EmptySet, false
		}
	}

	return coef, off.Add(vector.DotExact(coef, corner)), true
}

// PolytopeHull contracts a box to the hull of the polytope of a
// LinearRelax: each variable bound is minimized and maximized by an LP
// backend and the answer is turned into a verified bound (or a verified
// infeasibility) by rigorous post-processing. Unusable LP answers leave the
// bound unchanged and are reported to the Escalation.
type PolytopeHull struct {
	relax   *LinearRelax
	solver  lp.Solver
	n       int
	esc     *Escalation
	timeout time.Duration
}

// NewPolytopeHull returns the polytope hull of sys over solver. Reads
// WithEpsH, WithEscalation and WithLPTimeout.
func NewPolytopeHull(sys *system.System, solver lp.Solver, opts ...Option) *PolytopeHull {
	o := gatherOptions(opts...)
	return &PolytopeHull{
		relax:   NewLinearRelax(sys, opts...),
		solver:  solver,
		n:       sys.N(),
		esc:     o.esc,
		timeout: o.lpTimeout,
	}
}

// Contract implements Contractor.
func (c *PolytopeHull) Contract(box vector.Vector) Status {
	mustNb("PolytopeHull.Contract", c.n, len(box))
	if box.IsEmpty() {
		return Empty
	}
	rows, lb, ub := c.relax.Linearize(box)
	if len(rows) == 0 {
		return Unchanged
	}
	before := box.Clone()
	p := lp.Problem{Rows: rows, RowLB: lb, RowUB: ub, VarLB: box.LB(), VarUB: box.UB()}
	for j := 0; j < c.n; j++ {
		for _, sense := range [2]lp.Sense{lp.Minimize, lp.Maximize} {
			p.Objective = make([]float64, c.n)
			p.Objective[j] = 1
			p.Sense = sense
			empty, err := c.bound(p, box, j)
			if err != nil {
				c.esc.Report("PolytopeHull", err)
				continue
			}
			if empty {
				box.SetEmpty()
				return Empty
			}
		}
	}

	return outcome(before, box)
}

// bound solves p and narrows box[j]. It reports true when box holds no
// point of the polytope.
func (c *PolytopeHull) bound(p lp.Problem, box vector.Vector, j int) (bool, error) {
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	res, err := c.solver.Optimize(ctx, p)
	if err != nil {
		return false, fmt.Errorf("x%d %s: %w", j, senseName(p.Sense), err)
	}
	switch res.Status {
	case lp.Optimal:
		b, err := lp.RigorousBound(p, box, res.Dual)
		if err != nil {
			return false, err
		}
		if p.Sense == lp.Minimize {
			box[j] = box[j].Inter(interval.New(b, math.Inf(1)))
		} else {
			box[j] = box[j].Inter(interval.New(math.Inf(-1), b))
		}

		return box[j].IsEmpty(), nil
	case lp.Infeasible:
		if res.Dual != nil {
			proved, err := lp.ProvesInfeasible(p, box, res.Dual)
			if err != nil {
				return false, err
			}
			if proved {
				return true, nil
			}
		}
	}

	return false, fmt.Errorf("x%d %s: %s: %w", j, senseName(p.Sense), res.Status, ErrLPStatus)
}

func senseName(s lp.Sense) string {
	if s == lp.Maximize {
		return "max"
	}

	return "min"
}

// Clone implements Contractor. The LP backend is shared.
func (c *PolytopeHull) Clone() Contractor {
	cp := *c
	return &cp
}

// Nb implements Contractor.
func (c *PolytopeHull) Nb() int { return c.n }
