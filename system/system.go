// SPDX-License-Identifier: MIT

package system

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/ivlath/expr"
	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/matrix"
	"github.com/katalvlaran/ivlath/vector"
)

// Relation is the comparison of a constraint f(x) ∘ rhs.
type Relation int

// Relations.
const (
	EQ  Relation = iota // f(x) = rhs (rhs may be an interval)
	LEQ                 // f(x) ≤ sup(rhs)
	GEQ                 // f(x) ≥ inf(rhs)
	IN                  // f(x) ∈ rhs
)

// String returns the relation symbol.
func (r Relation) String() string {
	switch r {
	case EQ:
		return "="
	case LEQ:
		return "<="
	case GEQ:
		return ">="
	case IN:
		return "in"
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// Constraint is f(x) ∘ RHS.
type Constraint struct {
	Name string
	F    *expr.Func
	Op   Relation
	RHS  interval.Interval
}

// Image returns the range the constraint's function must lie in. Equalities
// are relaxed by epsH on both sides (epsH = 0 keeps them exact).
func (c Constraint) Image(epsH float64) interval.Interval {
	switch c.Op {
	case EQ:
		if epsH > 0 {
			return c.RHS.Add(interval.New(-epsH, epsH))
		}
		return c.RHS
	case LEQ:
		return interval.New(math.Inf(-1), c.RHS.UB())
	case GEQ:
		return interval.New(c.RHS.LB(), math.Inf(1))
	default:
		return c.RHS
	}
}

// String renders the constraint with variables in the x<i> form.
func (c Constraint) String() string {
	return c.F.String() + " " + c.Op.String() + " " + c.RHS.String()
}

// System is a set of variables with domains, constraints over them and an
// optional objective Goal (nil for a pure satisfaction problem).
type System struct {
	Vars        []string
	Domain      vector.Vector
	Constraints []Constraint
	Goal        *expr.Func

	// EpsH relaxes equalities when the system is optimized.
	EpsH float64
}

// N returns the number of variables.
func (s *System) N() int { return len(s.Vars) }

// M returns the number of constraints.
func (s *System) M() int { return len(s.Constraints) }

// Eval returns the enclosure of every constraint function over box.
func (s *System) Eval(box vector.Vector) vector.Vector {
	out := make(vector.Vector, len(s.Constraints))
	for i, c := range s.Constraints {
		out[i] = c.F.Eval(box)
	}

	return out
}

// Jacobian returns an M×N interval matrix enclosing the Jacobian of the
// constraint functions over box.
func (s *System) Jacobian(box vector.Vector) *matrix.Matrix {
	rows := make([]vector.Vector, len(s.Constraints))
	for i, c := range s.Constraints {
		rows[i] = c.F.Gradient(box)
	}

	return matrix.FromRows(rows)
}

// Objective returns the enclosure of the goal over box ([0, 0] without one).
func (s *System) Objective(box vector.Vector) interval.Interval {
	if s.Goal == nil {
		if box.IsEmpty() {
			return interval.EmptySet
		}
		return interval.Zero
	}

	return s.Goal.Eval(box)
}

// IsInner reports whether every point of box certainly satisfies every
// constraint (with equalities relaxed by EpsH).
func (s *System) IsInner(box vector.Vector) bool { return s.isInner(box, s.EpsH) }

// IsInnerExact is IsInner without the equality relaxation. A box with an
// equality is then inner only when the equality holds on all of it.
func (s *System) IsInnerExact(box vector.Vector) bool { return s.isInner(box, 0) }

func (s *System) isInner(box vector.Vector, epsH float64) bool {
	if box.IsEmpty() {
		return false
	}
	for _, c := range s.Constraints {
		if !c.F.Eval(box).IsSubset(c.Image(epsH)) {
			return false
		}
	}

	return true
}

// IsFeasiblePoint reports whether pt lies in the domain and rigorously
// satisfies every constraint (with equalities relaxed by EpsH).
func (s *System) IsFeasiblePoint(pt []float64) bool {
	if len(pt) != s.N() || !s.Domain.Contains(pt) {
		return false
	}

	return s.IsInner(vector.FromPoint(pt))
}

// Equalities returns the indices of the EQ constraints.
func (s *System) Equalities() []int {
	var eq []int
	for i, c := range s.Constraints {
		if c.Op == EQ {
			eq = append(eq, i)
		}
	}

	return eq
}

// IsSquare reports whether the system has exactly as many equalities as
// variables, the setting of interval Newton and existence proofs.
func (s *System) IsSquare() bool { return len(s.Equalities()) == s.N() }

// Sub returns the system restricted to the given constraints (same
// variables, domain and goal).
func (s *System) Sub(idx []int) *System {
	out := &System{Vars: s.Vars, Domain: s.Domain, Goal: s.Goal, EpsH: s.EpsH}
	for _, i := range idx {
		out.Constraints = append(out.Constraints, s.Constraints[i])
	}

	return out
}

// String lists the variables and constraints one per line.
func (s *System) String() string {
	var sb strings.Builder
	for i, v := range s.Vars {
		fmt.Fprintf(&sb, "var %s in %v\n", v, s.Domain[i])
	}
	for _, c := range s.Constraints {
		fmt.Fprintf(&sb, "%s: %s %s %v\n", c.Name, c.F.Format(s.Vars), c.Op, c.RHS)
	}
	if s.Goal != nil {
		fmt.Fprintf(&sb, "minimize %s\n", s.Goal.Format(s.Vars))
	}

	return sb.String()
}
