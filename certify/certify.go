// SPDX-License-Identifier: MIT

package certify

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ivlath/contractor"
	"github.com/katalvlaran/ivlath/system"
	"github.com/katalvlaran/ivlath/vector"
)

// DefaultMaxSteps bounds the funnel calls spent on one sliver.
const DefaultMaxSteps = 10

// Proof is the outcome of Certify.
type Proof int

// Outcomes.
const (
	NotProved Proof = iota
	Proved
)

// String returns "proved" or "not proved".
func (p Proof) String() string {
	if p == Proved {
		return "proved"
	}

	return "not proved"
}

// Inflation parameterizes mid + Delta·(x - mid) + [-Chi, Chi].
type Inflation struct {
	Delta, Chi float64
}

// DefaultInflation matches the contractor package defaults.
var DefaultInflation = Inflation{Delta: contractor.DefaultInflationDelta, Chi: contractor.DefaultInflationChi}

// Certifier runs the existence proof. Prover is required; a nil Funnel
// reuses the prover, zero Inflation and MaxSteps take the defaults.
type Certifier struct {
	Prover    contractor.Stepper
	Funnel    contractor.Contractor
	Inflation Inflation
	MaxSteps  int
}

// New returns a Certifier for the equalities of sys: an interval Newton
// prover without width ceiling and a funnel made of HC4 propagation
// followed by Newton.
//
// Errors:
//   - contractor.ErrNotSquare when the equalities do not form a square
//     system.
func New(sys *system.System, opts ...contractor.Option) (*Certifier, error) {
	opts = append(opts, contractor.WithCeil(math.Inf(1)))
	prover, err := contractor.NewNewton(sys, opts...)
	if err != nil {
		return nil, fmt.Errorf("certify.New: %w", err)
	}
	eq := sys.Sub(sys.Equalities())
	funnel := contractor.NewCompose(contractor.NewHC4(eq, opts...), prover.Clone())

	return &Certifier{Prover: prover, Funnel: funnel}, nil
}

func (c *Certifier) params() (Inflation, int, contractor.Contractor) {
	infl, steps, funnel := c.Inflation, c.MaxSteps, c.Funnel
	if infl == (Inflation{}) {
		infl = DefaultInflation
	}
	if steps <= 0 {
		steps = DefaultMaxSteps
	}
	if funnel == nil {
		funnel = c.Prover
	}

	return infl, steps, funnel
}

// Certify tries to prove that box holds a solution. On success it returns
// Proved and a sub-box of box holding exactly one solution of the prover's
// system. box itself is never modified.
func (c *Certifier) Certify(box vector.Vector) (Proof, vector.Vector) {
	if box.IsEmpty() || box.IsUnbounded() {
		return NotProved, nil
	}
	infl, steps, funnel := c.params()

	inflated := box.Inflate(infl.Delta, infl.Chi)
	img, err := c.Prover.Image(inflated)
	if err != nil || !img.IsInteriorSubset(inflated) {
		return NotProved, nil
	}
	w := img.Inter(inflated)
	if funnel.Contract(w) == contractor.Empty {
		return NotProved, nil
	}
	if w.IsSubset(box) {
		return Proved, w
	}

	// every piece of w outside box must be proven solution-free; each
	// piece is closed, so the solution then lies in w ∩ box. Flat pieces
	// lie on a face of box.
	for _, sliver := range w.Diff(box, false) {
		if sliver.IsFlat() && !w.IsFlat() {
			continue
		}
		if !eliminate(funnel, sliver, steps) {
			return NotProved, nil
		}
	}

	return Proved, w.Inter(box)
}

// eliminate contracts sliver until it is proven empty, giving up after
// steps calls or as soon as a call gains nothing.
func eliminate(funnel contractor.Contractor, sliver vector.Vector, steps int) bool {
	for k := 0; k < steps; k++ {
		switch funnel.Contract(sliver) {
		case contractor.Empty:
			return true
		case contractor.Unchanged:
			return false
		}
	}

	return false
}

// Clone returns a Certifier with its own prover and funnel working
// storage, for use by another goroutine.
func (c *Certifier) Clone() *Certifier {
	out := *c
	out.Prover = c.Prover.Clone().(contractor.Stepper)
	if c.Funnel != nil {
		out.Funnel = c.Funnel.Clone()
	}

	return &out
}
