// SPDX-License-Identifier: MIT

package lp

import (
	"context"
	"fmt"
	"math"
)

// Sense selects minimization or maximization.
type Sense int

// Senses.
const (
	Minimize Sense = iota
	Maximize
)

// Status is the outcome reported by a backend.
type Status int

// Statuses.
const (
	Optimal Status = iota
	Infeasible
	Timeout
	MaxIter
	Unbounded
	Unknown
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Timeout:
		return "timeout"
	case MaxIter:
		return "max-iter"
	case Unbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Problem is
//
//	min/max  Objective · x
//	s.t.     RowLB ≤ Rows · x ≤ RowUB
//	         VarLB ≤ x ≤ VarUB
//
// Infinite bounds are allowed.
type Problem struct {
	Rows         [][]float64
	RowLB, RowUB []float64
	VarLB, VarUB []float64
	Objective    []float64
	Sense        Sense
}

// N returns the number of variables.
func (p Problem) N() int { return len(p.Objective) }

// M returns the number of rows.
func (p Problem) M() int { return len(p.Rows) }

// Validate checks that every vector has a consistent length and no bound
// is NaN.
func (p Problem) Validate() error {
	n, m := p.N(), p.M()
	if len(p.VarLB) != n || len(p.VarUB) != n {
		return fmt.Errorf("lp.Validate: %d variables, bounds %d/%d: %w", n, len(p.VarLB), len(p.VarUB), ErrShape)
	}
	if len(p.RowLB) != m || len(p.RowUB) != m {
		return fmt.Errorf("lp.Validate: %d rows, bounds %d/%d: %w", m, len(p.RowLB), len(p.RowUB), ErrShape)
	}
	for i, row := range p.Rows {
		if len(row) != n {
			return fmt.Errorf("lp.Validate: row %d has %d columns, want %d: %w", i, len(row), n, ErrShape)
		}
		if math.IsNaN(p.RowLB[i]) || math.IsNaN(p.RowUB[i]) {
			return fmt.Errorf("lp.Validate: row %d: NaN bound: %w", i, ErrShape)
		}
	}
	for j := range n {
		if math.IsNaN(p.VarLB[j]) || math.IsNaN(p.VarUB[j]) {
			return fmt.Errorf("lp.Validate: variable %d: NaN bound: %w", j, ErrShape)
		}
	}

	return nil
}

// Result is a backend answer. Dual holds one multiplier per row: the
// optimal multipliers when Status is Optimal, a Farkas ray when the backend
// reports Infeasible and supplies one (nil otherwise).
type Result struct {
	Status Status
	Primal []float64
	Dual   []float64
	Value  float64
}

// Solver is an LP backend. Implementations must honor ctx cancellation by
// returning a Timeout status or ctx.Err().
type Solver interface {
	Optimize(ctx context.Context, p Problem) (Result, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, p Problem) (Result, error)

// Optimize calls f.
func (f SolverFunc) Optimize(ctx context.Context, p Problem) (Result, error) { return f(ctx, p) }
