// SPDX-License-Identifier: MIT

package search

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/ivlath/bisector"
	"github.com/katalvlaran/ivlath/cell"
	"github.com/katalvlaran/ivlath/certify"
	"github.com/katalvlaran/ivlath/contractor"
	"github.com/katalvlaran/ivlath/rounding"
	"github.com/katalvlaran/ivlath/system"
	"github.com/katalvlaran/ivlath/vector"
)

// Solver paves a box with Solution, Boundary (and optionally Infeasible)
// boxes. A Solver is not safe for concurrent use.
type Solver struct {
	sys  *system.System
	ineq *system.System
	opts Options
	ctc  contractor.Contractor
	bsc  bisector.Bisector
	buf  cell.Buffer
	cert *certify.Certifier
	ctl  rounding.Control

	state    State
	out      []Result
	stats    Stats
	began    time.Time
	deadline time.Time
	runCells int
	nextID   uint64
	started  bool
}

// New returns a Solver for sys. Unset components default to:
//   - contractor: fixpoint of HC4 followed, for a square system, by
//     interval Newton;
//   - bisector: LargestFirst at the classification width;
//   - buffer: a Stack (depth-first search);
//   - certifier: certify.New(sys) for a square system, none otherwise.
func New(sys *system.System, opts ...Option) (*Solver, error) {
	o := gatherOptions(opts...)
	s := &Solver{sys: sys, opts: o, ctc: o.ctc, bsc: o.bsc, cert: o.cert}

	var ineq []int
	for i, c := range sys.Constraints {
		if c.Op != system.EQ {
			ineq = append(ineq, i)
		}
	}
	s.ineq = sys.Sub(ineq)

	copts := []contractor.Option{contractor.WithEscalation(o.esc)}
	if s.ctc == nil {
		hc4 := contractor.NewHC4(sys, copts...)
		s.ctc = contractor.NewFixpoint(hc4, copts...)
		if sys.IsSquare() {
			newton, err := contractor.NewNewton(sys, copts...)
			if err != nil {
				return nil, fmt.Errorf("search.New: %w", err)
			}
			s.ctc = contractor.NewFixpoint(contractor.NewCompose(hc4, newton), copts...)
		}
	}
	if s.ctc.Nb() != sys.N() {
		return nil, fmt.Errorf("search.New: contractor on %d variables, system has %d: %w", s.ctc.Nb(), sys.N(), ErrDimension)
	}
	if s.bsc == nil {
		s.bsc = bisector.NewLargestFirst(bisector.WithPrec(o.prec))
	}
	if !o.certSet && sys.IsSquare() {
		cert, err := certify.New(sys, copts...)
		if err != nil {
			return nil, fmt.Errorf("search.New: %w", err)
		}
		s.cert = cert
	}
	if o.newBuffer == nil {
		s.opts.newBuffer = func() cell.Buffer { return cell.NewStack() }
	}
	s.buf = s.opts.newBuffer()

	return s, nil
}

// fork returns an idle copy of s with its own contractor, certifier,
// buffer and rounding control, sharing the system and the escalation.
func (s *Solver) fork() *Solver {
	w := &Solver{
		sys:  s.sys,
		ineq: s.ineq,
		opts: s.opts,
		ctc:  s.ctc.Clone(),
		bsc:  s.bsc,
		buf:  s.opts.newBuffer(),
	}
	w.opts.shared = true
	if s.cert != nil {
		w.cert = s.cert.Clone()
	}

	return w
}

// Start resets the solver on box ∩ domain. The box must have one
// component per variable.
func (s *Solver) Start(box vector.Vector) error {
	if len(box) != s.sys.N() {
		return fmt.Errorf("search.Start: %d components for %d variables: %w", len(box), s.sys.N(), ErrDimension)
	}
	if !s.opts.shared {
		s.opts.esc.Reset()
	}
	s.buf.Flush()
	s.out = nil
	s.stats = Stats{}
	s.nextID = 0
	s.began = time.Now()
	s.started = true
	s.resetBudget()

	root := cell.New(box.Inter(s.sys.Domain))
	if root.Box.IsEmpty() {
		s.finish(Complete)
		return nil
	}
	contractor.AddProperties(s.ctc, root.Box, root.Props)
	if pa, ok := s.bsc.(contractor.PropertyAdder); ok {
		pa.AddProperties(root.Box, root.Props)
	}
	root.ID = s.id()
	s.buf.Push(root)
	s.state = Root

	return nil
}

// Resume continues a run stopped by a budget or a cancellation; the cells
// reported Pending are searched again. It returns false when there is
// nothing to resume.
func (s *Solver) Resume() bool {
	if !s.started || s.state != Done || s.buf.Empty() {
		return false
	}
	s.out = nil
	s.stats.Stop = Running
	s.stats.Pending = 0
	s.resetBudget()
	s.state = Contracting

	return true
}

func (s *Solver) resetBudget() {
	s.runCells = 0
	if s.opts.timeLimit > 0 {
		s.deadline = time.Now().Add(s.opts.timeLimit)
	}
}

// State returns the current phase.
func (s *Solver) State() State { return s.state }

// Stats returns the counters of the current run.
func (s *Solver) Stats() Stats {
	st := s.stats
	if s.started && s.state != Done {
		st.Elapsed = time.Since(s.began)
	}

	return st
}

// Next returns the next reported box, or false once the run is over. The
// run is over when the buffer is exhausted or when a budget stops it, in
// which case the live cells come out as Pending results first.
func (s *Solver) Next(ctx context.Context) (Result, bool) {
	for {
		if len(s.out) > 0 {
			r := s.out[0]
			s.out = s.out[1:]
			return r, true
		}
		if !s.started || s.state == Done {
			return Result{}, false
		}
		c := s.buf.Pop()
		if c == nil {
			s.finish(Complete)
			continue
		}
		if stop := s.budget(ctx); stop != Running {
			s.buf.Push(c)
			s.suspend(stop)
			continue
		}
		s.process(c)
	}
}

// All iterates over the remaining results. Breaking out of the loop keeps
// the solver usable: Next or another All picks up where it stopped.
func (s *Solver) All(ctx context.Context) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for {
			r, ok := s.Next(ctx)
			if !ok || !yield(r) {
				return
			}
		}
	}
}

// Solve runs a whole search over box and gathers the results. A run cut
// short by a budget or by ctx is not an error: the report then ends with
// Pending results and Stats.Stop tells why.
func (s *Solver) Solve(ctx context.Context, box vector.Vector) (Report, error) {
	ctx, span := s.opts.tracer.Start(ctx, "search.Solve",
		trace.WithAttributes(attribute.Int("search.vars", s.sys.N())))
	defer span.End()

	if err := s.Start(box); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}

	return s.collect(ctx, span), nil
}

// collect drains the current run into a report.
func (s *Solver) collect(ctx context.Context, span trace.Span) Report {
	var rep Report
	for r := range s.All(ctx) {
		rep.Results = append(rep.Results, r)
	}
	rep.Stats = s.Stats()
	rep.Degeneracy = s.opts.esc.Diagnostics()

	span.SetAttributes(
		attribute.Int("search.cells", rep.Stats.Cells),
		attribute.Int("search.solutions", rep.Stats.Solutions),
		attribute.Int("search.boundaries", rep.Stats.Boundaries),
		attribute.Int("search.pending", rep.Stats.Pending),
		attribute.String("search.stop", rep.Stats.Stop.String()),
	)
	span.SetStatus(codes.Ok, "")

	return rep
}

func (s *Solver) id() uint64 {
	s.nextID++
	return s.nextID
}

// budget reports the first exhausted budget, Running when none is.
func (s *Solver) budget(ctx context.Context) Stop {
	switch {
	case ctx.Err() != nil:
		return Cancelled
	case s.opts.maxCells > 0 && s.runCells >= s.opts.maxCells:
		return CellLimit
	case s.opts.timeLimit > 0 && s.runCells&timeCheckMask == 0 && time.Now().After(s.deadline):
		return TimeLimit
	}

	return Running
}

// process runs one cell through contraction and classification.
func (s *Solver) process(c *cell.Cell) {
	s.stats.Cells++
	s.runCells++
	s.stats.MaxDepth = max(s.stats.MaxDepth, c.Depth)

	s.state = Contracting
	var before vector.Vector
	if s.opts.infeasible {
		before = c.Box.Clone()
	}
	st := contractor.ContractCell(s.ctc, c)
	s.opts.metrics.cell(engineSolver, st)
	switch st {
	case contractor.Empty:
		if s.opts.infeasible {
			s.emit(Result{Box: before, Status: Infeasible, Depth: c.Depth, ID: c.ID})
		}
		return
	case contractor.Narrowed:
		c.Props.Update(c.Box)
		if s.opts.infeasible {
			s.emitRest(before, c.Box, c)
		}
	}

	s.state = Classify
	// relaxed equalities never count as proved
	if s.sys.IsInnerExact(c.Box) {
		s.emit(Result{Box: c.Box, Status: Solution, Proof: certify.Proved, Depth: c.Depth, ID: c.ID})
		return
	}
	if s.small(c.Box) {
		s.certify(c)
		return
	}

	s.state = Bisect
	left, right, err := s.bsc.Bisect(c)
	if err != nil {
		s.opts.logger.Debug("cell cannot be bisected", slog.Uint64("cell", c.ID), slog.Any("err", err))
		s.certify(c)
		return
	}
	left.ID, right.ID = s.id(), s.id()
	s.stats.Bisections++
	s.buf.Push(right)
	s.buf.Push(left)
	s.stats.MaxBuffer = max(s.stats.MaxBuffer, s.buf.Len())
}

// small reports whether every solution variable of box is narrower than
// the precision; widths are rounded upward.
func (s *Solver) small(box vector.Vector) bool {
	restore := s.ctl.Scoped(rounding.Up)
	defer restore()

	narrow := func(i int) bool { return s.ctl.Sub(box[i].UB(), box[i].LB()) < s.opts.prec }
	if len(s.opts.solVars) == 0 {
		for i := range box {
			if !narrow(i) {
				return false
			}
		}
		return true
	}
	for _, i := range s.opts.solVars {
		if i < len(box) && !narrow(i) {
			return false
		}
	}

	return true
}

// certify classifies a cell that will not be split further.
func (s *Solver) certify(c *cell.Cell) {
	s.state = Certify
	if s.cert != nil {
		if proof, w := s.cert.Certify(c.Box); proof == certify.Proved && s.ineq.IsInner(w) {
			s.emit(Result{Box: w, Status: Solution, Proof: certify.Proved, Depth: c.Depth, ID: c.ID})
			// the solution is unique in an inflation of c.Box, so the rest
			// of the cell holds none
			if s.opts.infeasible {
				s.emitRest(c.Box, w, c)
			}
			return
		}
	}
	s.emit(Result{Box: c.Box, Status: Boundary, Depth: c.Depth, ID: c.ID})
}

// emitRest reports the closure of outer \ inner as infeasible. Flat pieces
// lie on a face of inner and are skipped.
func (s *Solver) emitRest(outer, inner vector.Vector, c *cell.Cell) {
	for _, piece := range outer.Diff(inner, false) {
		if piece.IsFlat() && !outer.IsFlat() {
			continue
		}
		s.emit(Result{Box: piece, Status: Infeasible, Depth: c.Depth, ID: c.ID})
	}
}

func (s *Solver) emit(r Result) {
	switch r.Status {
	case Solution:
		s.stats.Solutions++
		s.opts.logger.Debug("solution", slog.Uint64("cell", r.ID), slog.String("box", r.Box.String()))
	case Boundary:
		s.stats.Boundaries++
	case Infeasible:
		s.stats.Infeasible++
	case Pending:
		s.stats.Pending++
	}
	s.opts.metrics.result(r.Status)
	s.out = append(s.out, r)
}

// suspend reports every live cell Pending and ends the run; the cells stay
// in the buffer for Resume.
func (s *Solver) suspend(stop Stop) {
	for c := range s.buf.All() {
		s.emit(Result{Box: c.Box.Clone(), Status: Pending, Depth: c.Depth, ID: c.ID})
	}
	s.finish(stop)
}

func (s *Solver) finish(stop Stop) {
	s.state = Done
	s.stats.Stop = stop
	s.stats.Elapsed = time.Since(s.began)
	s.opts.metrics.run(engineSolver, stop, s.stats.Elapsed)
	s.opts.logger.Info("search stopped",
		slog.String("stop", stop.String()),
		slog.Int("cells", s.stats.Cells),
		slog.Int("solutions", s.stats.Solutions),
		slog.Int("boundaries", s.stats.Boundaries),
		slog.Int("pending", s.stats.Pending),
		slog.Duration("elapsed", s.stats.Elapsed))
}
