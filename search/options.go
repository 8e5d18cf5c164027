// SPDX-License-Identifier: MIT

package search

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/ivlath/bisector"
	"github.com/katalvlaran/ivlath/cell"
	"github.com/katalvlaran/ivlath/certify"
	"github.com/katalvlaran/ivlath/contractor"
)

const (
	// DefaultPrec is the width below which a cell is classified instead
	// of bisected.
	DefaultPrec = 1e-8

	// DefaultRelPrec and DefaultAbsPrec stop the optimizer once
	// loup - uplo is below either bound (relative to |loup| for the first).
	DefaultRelPrec = 1e-3
	DefaultAbsPrec = 1e-7

	// DefaultSamples is the number of random points, besides the
	// midpoint, tried per cell when looking for a better loup.
	DefaultSamples = 4

	// timeCheckMask spaces out deadline checks (every 64 cells).
	timeCheckMask = 63

	tracerName = "github.com/katalvlaran/ivlath/search"
)

// Options configures Solver, Optimizer and Parallel. Unset components get
// defaults derived from the system (see New and NewOptimizer).
type Options struct {
	ctc        contractor.Contractor
	bsc        bisector.Bisector
	newBuffer  func() cell.Buffer
	prec       float64
	maxCells   int
	timeLimit  time.Duration
	cert       *certify.Certifier
	certSet    bool
	logger     *slog.Logger
	metrics    *Metrics
	tracer     trace.Tracer
	solVars    []int
	infeasible bool
	esc        *contractor.Escalation
	relPrec    float64
	absPrec    float64
	samples    int
	seed       uint64

	// shared marks a Parallel worker: the escalation belongs to the
	// coordinating call and is not reset by Start.
	shared bool
}

// Option mutates Options. Option constructors panic on invalid values.
type Option func(*Options)

// WithContractor replaces the default contraction pipeline.
func WithContractor(c contractor.Contractor) Option {
	return func(o *Options) { o.ctc = c }
}

// WithBisector replaces the default bisector.
func WithBisector(b bisector.Bisector) Option {
	return func(o *Options) { o.bsc = b }
}

// WithBuffer sets the cell buffer factory (one buffer per solver).
// Panics on nil.
func WithBuffer(newBuffer func() cell.Buffer) Option {
	if newBuffer == nil {
		panic("search: WithBuffer(nil)")
	}
	return func(o *Options) { o.newBuffer = newBuffer }
}

// WithPrec sets the classification width. Panics unless eps ≥ 0.
func WithPrec(eps float64) Option {
	if !(eps >= 0) || math.IsInf(eps, 1) {
		panic(fmt.Sprintf("search: WithPrec(%g): must be finite and >= 0", eps))
	}
	return func(o *Options) { o.prec = eps }
}

// WithMaxCells bounds the number of cells processed per run (0 for no
// bound). Panics on a negative n.
func WithMaxCells(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("search: WithMaxCells(%d): must be >= 0", n))
	}
	return func(o *Options) { o.maxCells = n }
}

// WithTimeLimit bounds the duration of a run (0 for no bound). Panics on
// a negative d.
func WithTimeLimit(d time.Duration) Option {
	if d < 0 {
		panic(fmt.Sprintf("search: WithTimeLimit(%v): must be >= 0", d))
	}
	return func(o *Options) { o.timeLimit = d }
}

// WithCertifier replaces the default certifier; nil disables
// certification, so every small cell is reported Boundary.
func WithCertifier(c *certify.Certifier) Option {
	return func(o *Options) { o.cert, o.certSet = c, true }
}

// WithLogger sets the logger (slog.Default() when nil).
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// WithMetrics records counters and timings in m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.metrics = m }
}

// WithTracer sets the tracer used for spans (the global provider's tracer
// when nil).
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) { o.tracer = t }
}

// WithSolutionVars restricts the classification width test to the given
// variables; the others are treated as parameters. Panics on a negative
// index.
func WithSolutionVars(idx ...int) Option {
	for _, i := range idx {
		if i < 0 {
			panic(fmt.Sprintf("search: WithSolutionVars(%v): negative index", idx))
		}
	}
	vars := append([]int(nil), idx...)
	return func(o *Options) { o.solVars = vars }
}

// WithInfeasible makes the Solver report the regions it proves
// solution-free as Infeasible results, so that the reported boxes pave
// the whole root box.
func WithInfeasible() Option {
	return func(o *Options) { o.infeasible = true }
}

// WithEscalation routes the default contractors' degeneracy reports to e.
func WithEscalation(e *contractor.Escalation) Option {
	return func(o *Options) { o.esc = e }
}

// WithRelPrec sets the optimizer's relative gap. Panics unless r ≥ 0.
func WithRelPrec(r float64) Option {
	if !(r >= 0) {
		panic(fmt.Sprintf("search: WithRelPrec(%g): must be >= 0", r))
	}
	return func(o *Options) { o.relPrec = r }
}

// WithAbsPrec sets the optimizer's absolute gap. Panics unless a ≥ 0.
func WithAbsPrec(a float64) Option {
	if !(a >= 0) {
		panic(fmt.Sprintf("search: WithAbsPrec(%g): must be >= 0", a))
	}
	return func(o *Options) { o.absPrec = a }
}

// WithSamples sets the number of random points tried per cell by the
// optimizer. Panics on a negative n.
func WithSamples(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("search: WithSamples(%d): must be >= 0", n))
	}
	return func(o *Options) { o.samples = n }
}

// WithSeed seeds the optimizer's point sampling and the default double
// heap.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.seed = seed }
}

// DefaultOptions returns the package defaults; components stay unset.
func DefaultOptions() Options {
	return Options{
		prec:    DefaultPrec,
		relPrec: DefaultRelPrec,
		absPrec: DefaultAbsPrec,
		samples: DefaultSamples,
		seed:    1,
	}
}

func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	if o.esc == nil {
		o.esc = contractor.NewEscalation(o.logger)
	}

	return o
}
