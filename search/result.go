// SPDX-License-Identifier: MIT

package search

import (
	"fmt"
	"time"

	"github.com/katalvlaran/ivlath/certify"
	"github.com/katalvlaran/ivlath/contractor"
	"github.com/katalvlaran/ivlath/vector"
)

// Status classifies a reported box.
type Status int

// Statuses.
const (
	// Solution boxes either hold a certified solution or consist of
	// solutions only (see Result.Proof).
	Solution Status = iota
	// Boundary boxes are narrower than the precision but undecided.
	Boundary
	// Infeasible boxes are proven to hold no solution.
	Infeasible
	// Pending boxes were still alive when the search stopped.
	Pending
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case Solution:
		return "solution"
	case Boundary:
		return "boundary"
	case Infeasible:
		return "infeasible"
	case Pending:
		return "pending"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is the phase of the Solver state machine.
type State int

// States. A run moves Root → Contracting → Classify → (Bisect or
// Certify) → Contracting ... → Done.
const (
	Root State = iota
	Contracting
	Classify
	Bisect
	Certify
	Done
)

var stateNames = [...]string{"root", "contracting", "classify", "bisect", "certify", "done"}

// String returns the lower-case state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}

// Stop tells why a run ended.
type Stop int

// Stop reasons.
const (
	Running Stop = iota
	Complete
	CellLimit
	TimeLimit
	Cancelled
)

var stopNames = [...]string{"running", "complete", "cell limit", "time limit", "cancelled"}

// String returns the reason in words.
func (s Stop) String() string {
	if s < 0 || int(s) >= len(stopNames) {
		return fmt.Sprintf("Stop(%d)", int(s))
	}

	return stopNames[s]
}

// Result is one reported box.
type Result struct {
	Box    vector.Vector
	Status Status

	// Proof is certify.Proved for a Solution whose existence is rigorous:
	// Box holds a unique solution of the equalities that satisfies every
	// inequality, or every point of Box satisfies every constraint.
	Proof certify.Proof

	Depth int
	ID    uint64
}

// Stats counts the work of a run.
type Stats struct {
	Cells      int
	Bisections int
	Solutions  int
	Boundaries int
	Infeasible int
	Pending    int
	Pruned     int
	MaxDepth   int
	MaxBuffer  int
	Elapsed    time.Duration
	Stop       Stop
}

// add accumulates o into s; the stop reason keeps the first abnormal one.
func (s *Stats) add(o Stats) {
	s.Cells += o.Cells
	s.Bisections += o.Bisections
	s.Solutions += o.Solutions
	s.Boundaries += o.Boundaries
	s.Infeasible += o.Infeasible
	s.Pending += o.Pending
	s.Pruned += o.Pruned
	s.MaxDepth = max(s.MaxDepth, o.MaxDepth)
	s.MaxBuffer += o.MaxBuffer
	if s.Stop == Running || s.Stop == Complete {
		s.Stop = o.Stop
	}
}

// Report gathers every result of a run.
type Report struct {
	Results []Result
	Stats   Stats

	// Degeneracy lists the numerical degeneracy reports of the run.
	Degeneracy []contractor.Diagnostic
}

// Filter returns the results of the given status, in report order.
func (r Report) Filter(st Status) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == st {
			out = append(out, res)
		}
	}

	return out
}

// Complete reports whether the run explored the whole box.
func (r Report) Complete() bool { return r.Stats.Stop == Complete }
