// SPDX-License-Identifier: MIT

package contractor

import (
	"fmt"

	"github.com/katalvlaran/ivlath/cell"
	"github.com/katalvlaran/ivlath/vector"
)

// Status is the outcome of a contraction.
type Status int

// Outcomes, ordered by strength (merge keeps the strongest).
const (
	Unchanged Status = iota
	Narrowed
	Empty
)

// String returns the lower-case outcome name.
func (s Status) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Narrowed:
		return "narrowed"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Contractor narrows boxes of dimension Nb in place. Contract must return
// a subset of its input and must set the box empty when returning Empty.
type Contractor interface {
	Contract(box vector.Vector) Status
	Clone() Contractor
	Nb() int
}

// PropertyAdder is implemented by contractors that keep per-cell state;
// AddProperties attaches it to a root cell.
type PropertyAdder interface {
	AddProperties(box vector.Vector, props *cell.Properties)
}

// CellContractor is implemented by contractors that read or update cell
// properties. The search calls ContractCell instead of Contract when
// available.
type CellContractor interface {
	ContractCell(c *cell.Cell) Status
}

// ContractCell contracts c.Box with ctc, through ContractCell when ctc
// supports it.
func ContractCell(ctc Contractor, c *cell.Cell) Status {
	if cc, ok := ctc.(CellContractor); ok {
		return cc.ContractCell(c)
	}

	return ctc.Contract(c.Box)
}

// AddProperties calls AddProperties on ctc when it is a PropertyAdder.
func AddProperties(ctc Contractor, box vector.Vector, props *cell.Properties) {
	if pa, ok := ctc.(PropertyAdder); ok {
		pa.AddProperties(box, props)
	}
}

func merge(a, b Status) Status { return max(a, b) }

// outcome compares the box after contraction with a copy taken before.
func outcome(before, after vector.Vector) Status {
	switch {
	case after.IsEmpty():
		return Empty
	case before.Equal(after):
		return Unchanged
	default:
		return Narrowed
	}
}

func mustNb(op string, want, got int) {
	if want != got {
		panic(fmt.Errorf("contractor.%s(%d vs %d): %w", op, want, got, vector.ErrDimensionMismatch))
	}
}
