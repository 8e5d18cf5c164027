// SPDX-License-Identifier: MIT

package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/ivlath/bisector"
	"github.com/katalvlaran/ivlath/cell"
	"github.com/katalvlaran/ivlath/contractor"
	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/rounding"
	"github.com/katalvlaran/ivlath/system"
	"github.com/katalvlaran/ivlath/vector"
)

// uploEvery spaces out the O(buffer) recomputation of uplo.
const uploEvery = 16

// OptStatus is the outcome of Minimize.
type OptStatus int

// Outcomes.
const (
	// Optimal: loup - uplo is within the requested precision.
	Optimal OptStatus = iota
	// Unsatisfiable: every cell was eliminated, the system has no solution.
	Unsatisfiable
	// NoFeasiblePoint: the search ended without any verified feasible
	// point although some small cells could not be eliminated.
	NoFeasiblePoint
	// UnreachedPrec: the search ended with a gap wider than requested
	// (cells narrower than the precision kept uplo low).
	UnreachedPrec
	// Stopped: a budget or the context ended the search.
	Stopped
)

var optStatusNames = [...]string{"optimal", "unsatisfiable", "no feasible point", "unreached precision", "stopped"}

// String returns the outcome in words.
func (s OptStatus) String() string {
	if s < 0 || int(s) >= len(optStatusNames) {
		return fmt.Sprintf("OptStatus(%d)", int(s))
	}

	return optStatusNames[s]
}

// OptReport is the outcome of a minimization. The global minimum over the
// feasible set lies in [Uplo, Loup]; Point is the feasible point where
// Loup was verified (nil when none was found).
type OptReport struct {
	Status  OptStatus
	Loup    float64
	Uplo    float64
	Point   []float64
	Stats   Stats
	Pending []vector.Vector

	Degeneracy []contractor.Diagnostic
}

// Optimizer minimizes the goal of a system by interval branch and bound.
// An Optimizer is not safe for concurrent use.
type Optimizer struct {
	sys  *system.System
	opts Options
	ctc  contractor.Contractor
	bsc  bisector.Bisector
	buf  cell.Buffer
	ctl  rounding.Control
	rnd  *rand.Rand
	free bool // no constraints: the goal alone decides

	root     vector.Vector
	loup     float64
	point    []float64
	uploDone float64
	stats    Stats
	began    time.Time
	deadline time.Time
	nextID   uint64
}

// NewOptimizer returns an Optimizer for sys. Unset components default to:
//   - contractor: HC4 over the constraints with equalities relaxed by
//     sys.EpsH;
//   - bisector: SmearSum at the classification width;
//   - buffer: a DoubleHeap ordered by lower then upper objective bound.
//
// Errors:
//   - ErrNoGoal when sys has no objective.
func NewOptimizer(sys *system.System, opts ...Option) (*Optimizer, error) {
	if sys.Goal == nil {
		return nil, fmt.Errorf("search.NewOptimizer: %w", ErrNoGoal)
	}
	o := gatherOptions(opts...)
	opt := &Optimizer{
		sys:  sys,
		opts: o,
		ctc:  o.ctc,
		bsc:  o.bsc,
		rnd:  rand.New(rand.NewPCG(o.seed, o.seed^0xda3e39cb94b95bdb)),
		free: len(sys.Constraints) == 0,
	}
	if opt.ctc == nil {
		opt.ctc = contractor.NewHC4(sys, contractor.WithEpsH(sys.EpsH), contractor.WithEscalation(o.esc))
	}
	if opt.ctc.Nb() != sys.N() {
		return nil, fmt.Errorf("search.NewOptimizer: contractor on %d variables, system has %d: %w", opt.ctc.Nb(), sys.N(), ErrDimension)
	}
	if opt.bsc == nil {
		opt.bsc = bisector.NewSmearSum(sys, bisector.WithPrec(o.prec))
	}
	if o.newBuffer == nil {
		seed := o.seed
		opt.opts.newBuffer = func() cell.Buffer { return cell.NewDoubleHeap(cell.MinLB, cell.MinUB, 0.5, seed) }
	}
	opt.buf = opt.opts.newBuffer()

	return opt, nil
}

// Loup returns the best verified objective value so far (+Inf before any).
func (o *Optimizer) Loup() float64 { return o.loup }

// Minimize searches box ∩ domain for the minimum of the goal. A run cut
// short by a budget or by ctx is not an error: the report has status
// Stopped, valid bounds and the live boxes in Pending.
func (o *Optimizer) Minimize(ctx context.Context, box vector.Vector) (OptReport, error) {
	ctx, span := o.opts.tracer.Start(ctx, "search.Minimize",
		trace.WithAttributes(attribute.Int("search.vars", o.sys.N())))
	defer span.End()

	if len(box) != o.sys.N() {
		err := fmt.Errorf("search.Minimize: %d components for %d variables: %w", len(box), o.sys.N(), ErrDimension)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return OptReport{}, err
	}
	o.reset()

	root := cell.New(box.Inter(o.sys.Domain))
	o.root = root.Box.Clone()
	if !root.Box.IsEmpty() {
		root.Obj, _ = o.bound(root.Box)
		contractor.AddProperties(o.ctc, root.Box, root.Props)
		if pa, ok := o.bsc.(contractor.PropertyAdder); ok {
			pa.AddProperties(root.Box, root.Props)
		}
		root.ID = o.id()
		o.buf.Push(root)
	}

	stop, converged := Running, false
	for !o.buf.Empty() {
		if o.stats.Cells%uploEvery == 0 && o.converged(o.uplo()) {
			converged = true
			break
		}
		c := o.buf.Pop()
		if stop = o.budget(ctx); stop != Running {
			o.buf.Push(c)
			break
		}
		o.process(c)
	}
	if stop == Running {
		stop = Complete
	}

	rep := o.report(stop, converged)
	o.opts.metrics.objective(rep.Loup, rep.Uplo)
	o.opts.metrics.run(engineOptimizer, stop, rep.Stats.Elapsed)
	o.opts.logger.Info("optimization stopped",
		slog.String("status", rep.Status.String()),
		slog.Float64("loup", rep.Loup),
		slog.Float64("uplo", rep.Uplo),
		slog.Int("cells", rep.Stats.Cells),
		slog.Duration("elapsed", rep.Stats.Elapsed))
	span.SetAttributes(
		attribute.String("search.status", rep.Status.String()),
		attribute.Float64("search.loup", rep.Loup),
		attribute.Float64("search.uplo", rep.Uplo),
		attribute.Int("search.cells", rep.Stats.Cells),
	)
	span.SetStatus(codes.Ok, "")

	return rep, nil
}

func (o *Optimizer) reset() {
	o.opts.esc.Reset()
	o.buf.Flush()
	o.loup = math.Inf(1)
	o.point = nil
	o.uploDone = math.Inf(1)
	o.stats = Stats{}
	o.nextID = 0
	o.began = time.Now()
	if o.opts.timeLimit > 0 {
		o.deadline = o.began.Add(o.opts.timeLimit)
	}
}

func (o *Optimizer) id() uint64 {
	o.nextID++
	return o.nextID
}

func (o *Optimizer) budget(ctx context.Context) Stop {
	switch {
	case ctx.Err() != nil:
		return Cancelled
	case o.opts.maxCells > 0 && o.stats.Cells >= o.opts.maxCells:
		return CellLimit
	case o.opts.timeLimit > 0 && o.stats.Cells&timeCheckMask == 0 && time.Now().After(o.deadline):
		return TimeLimit
	}

	return Running
}

// process cuts, contracts, evaluates and splits one cell.
func (o *Optimizer) process(c *cell.Cell) {
	o.stats.Cells++
	o.stats.MaxDepth = max(o.stats.MaxDepth, c.Depth)

	if !math.IsInf(o.loup, 1) && !o.sys.Goal.Backward(c.Box, interval.New(math.Inf(-1), o.loup)) {
		o.opts.metrics.cell(engineOptimizer, contractor.Empty)
		o.stats.Pruned++
		return
	}
	st := contractor.ContractCell(o.ctc, c)
	o.opts.metrics.cell(engineOptimizer, st)
	if st == contractor.Empty {
		o.stats.Infeasible++
		return
	}
	obj, g := o.bound(c.Box)
	if o.free {
		keep, cut := o.monotonic(c.Box, g)
		if !keep || o.concave(c.Box) {
			o.stats.Pruned++
			return
		}
		if cut {
			obj, _ = o.bound(c.Box)
		}
	}
	c.Props.Update(c.Box)
	c.Obj = c.Obj.Inter(obj)
	if c.Obj.IsEmpty() {
		o.stats.Infeasible++
		return
	}

	o.sample(c.Box)
	if c.Obj.LB() > o.loup {
		o.stats.Pruned++
		return
	}
	if c.Box.MaxDiam() < o.opts.prec {
		o.settle(c)
		return
	}
	left, right, err := o.bsc.Bisect(c)
	if err != nil {
		o.settle(c)
		return
	}
	o.stats.Bisections++
	for _, ch := range []*cell.Cell{left, right} {
		ch.ID = o.id()
		obj, _ := o.bound(ch.Box)
		ch.Obj = ch.Obj.Inter(obj)
		if ch.Obj.IsEmpty() || ch.Obj.LB() > o.loup {
			o.stats.Pruned++
			continue
		}
		o.buf.Push(ch)
	}
	o.stats.MaxBuffer = max(o.stats.MaxBuffer, o.buf.Len())
}

// bound encloses the goal over box: the natural extension intersected with
// the centred form f(m) + ∇f(box)·(box - m), m the midpoint. It also
// returns the gradient enclosure (nil when box is empty).
func (o *Optimizer) bound(box vector.Vector) (interval.Interval, vector.Vector) {
	y := o.sys.Goal.Eval(box)
	if y.IsEmpty() {
		return y, nil
	}
	g := o.sys.Goal.Gradient(box)
	if box.IsUnbounded() {
		return y, g
	}
	mid := box.Mid()
	mv := o.sys.Goal.EvalPoint(mid)
	for i, gi := range g {
		mv = mv.Add(gi.Mul(box[i].SubScalar(mid[i])))
	}
	if z := y.Inter(mv); !z.IsEmpty() {
		return z, g
	}

	return y, g
}

// monotonic narrows box along the variables where the goal is strictly
// monotonic over it. Such a variable holds a minimizer only on the face of
// the root box it decreases towards; keep is false when box does not reach
// that face. cut reports whether box changed.
func (o *Optimizer) monotonic(box, g vector.Vector) (keep, cut bool) {
	for i, gi := range g {
		if box[i].IsDegenerated() || box[i].IsUnbounded() {
			continue
		}
		switch {
		case gi.LB() > 0:
			if box[i].LB() > o.root[i].LB() {
				return false, cut
			}
			box[i], cut = interval.Point(box[i].LB()), true
		case gi.UB() < 0:
			if box[i].UB() < o.root[i].UB() {
				return false, cut
			}
			box[i], cut = interval.Point(box[i].UB()), true
		}
	}

	return true, cut
}

// concave reports whether the goal is strictly concave along a variable
// whose range in box lies inside the root box. A minimizer there would be
// an interior local minimum with a negative second derivative.
func (o *Optimizer) concave(box vector.Vector) bool {
	h := o.sys.Goal.Hessian(box)
	for i := range box {
		if box[i].IsDegenerated() || box[i].LB() <= o.root[i].LB() || box[i].UB() >= o.root[i].UB() {
			continue
		}
		if h.At(i, i).UB() < 0 {
			return true
		}
	}

	return false
}

// settle keeps the lower bound of a cell that is not split further.
func (o *Optimizer) settle(c *cell.Cell) {
	o.stats.Boundaries++
	o.uploDone = min(o.uploDone, c.Obj.LB())
}

// sample tries the midpoint and random points of box as loup candidates;
// a candidate counts only when it is rigorously feasible.
func (o *Optimizer) sample(box vector.Vector) {
	o.try(box.Mid())
	if box.IsUnbounded() {
		return
	}
	lb, ub := box.LB(), box.UB()
	for k := 0; k < o.opts.samples; k++ {
		pt := make([]float64, len(box))
		for i := range pt {
			pt[i] = min(max(lb[i]+o.rnd.Float64()*(ub[i]-lb[i]), lb[i]), ub[i])
		}
		o.try(pt)
	}
}

func (o *Optimizer) try(pt []float64) {
	if !o.sys.IsFeasiblePoint(pt) {
		return
	}
	if v := o.sys.Goal.EvalPoint(pt).UB(); v < o.loup {
		o.loup, o.point = v, append([]float64(nil), pt...)
		o.opts.logger.Debug("new loup", slog.Float64("loup", v))
	}
}

// uplo returns the smallest objective lower bound over the live cells and
// the settled ones, capped by loup.
func (o *Optimizer) uplo() float64 {
	u := o.uploDone
	for c := range o.buf.All() {
		u = min(u, c.Obj.LB())
	}

	return min(u, o.loup)
}

// converged reports whether loup - uplo (rounded up) meets the absolute or
// the relative precision (threshold rounded down).
func (o *Optimizer) converged(uplo float64) bool {
	if math.IsInf(o.loup, 1) {
		return false
	}
	restore := o.ctl.Scoped(rounding.Up)
	gap := o.ctl.Sub(o.loup, uplo)
	o.ctl.Down()
	rel := o.ctl.Mul(o.opts.relPrec, math.Abs(o.loup))
	restore()

	return gap <= o.opts.absPrec || gap <= rel
}

func (o *Optimizer) report(stop Stop, converged bool) OptReport {
	o.stats.Stop = stop
	o.stats.Elapsed = time.Since(o.began)
	uplo := o.uplo()
	rep := OptReport{
		Loup:       o.loup,
		Uplo:       uplo,
		Point:      o.point,
		Degeneracy: o.opts.esc.Diagnostics(),
	}
	switch {
	case converged || o.converged(uplo):
		rep.Status = Optimal
	case stop != Complete:
		rep.Status = Stopped
	case math.IsInf(o.loup, 1) && math.IsInf(o.uploDone, 1):
		rep.Status = Unsatisfiable
	case math.IsInf(o.loup, 1):
		rep.Status = NoFeasiblePoint
	default:
		rep.Status = UnreachedPrec
	}
	for c := range o.buf.All() {
		rep.Pending = append(rep.Pending, c.Box.Clone())
	}
	o.stats.Pending = len(rep.Pending)
	rep.Stats = o.stats

	return rep
}
