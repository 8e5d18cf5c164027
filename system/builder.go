// SPDX-License-Identifier: MIT

package system

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ivlath/expr"
	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/vector"
)

const (
	methodVar   = "Var"
	methodBuild = "Build"
)

type pending struct {
	name string
	root *expr.Node
	op   Relation
	rhs  interval.Interval
}

// Builder accumulates variables and constraints. Declaration methods never
// fail; every problem is reported by Build.
type Builder struct {
	vars   []string
	bounds [][2]float64
	cons   []pending
	goal   *expr.Node
	epsH   float64
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder { return &Builder{} }

// Var declares a variable with domain [lo, hi] (infinite bounds allowed)
// and returns its expression leaf.
func (b *Builder) Var(name string, lo, hi float64) *expr.Node {
	b.vars = append(b.vars, name)
	b.bounds = append(b.bounds, [2]float64{lo, hi})

	return expr.X(len(b.vars) - 1)
}

// Constrain adds f ∘ rhs.
func (b *Builder) Constrain(f *expr.Node, op Relation, rhs interval.Interval) *Builder {
	b.cons = append(b.cons, pending{name: fmt.Sprintf("c%d", len(b.cons)), root: f, op: op, rhs: rhs})
	return b
}

// Eq adds f = v.
func (b *Builder) Eq(f *expr.Node, v float64) *Builder { return b.Constrain(f, EQ, interval.Point(v)) }

// Leq adds f ≤ v.
func (b *Builder) Leq(f *expr.Node, v float64) *Builder { return b.Constrain(f, LEQ, interval.Point(v)) }

// Geq adds f ≥ v.
func (b *Builder) Geq(f *expr.Node, v float64) *Builder { return b.Constrain(f, GEQ, interval.Point(v)) }

// In adds f ∈ [lo, hi].
func (b *Builder) In(f *expr.Node, lo, hi float64) *Builder {
	return b.Constrain(f, IN, interval.New(lo, hi))
}

// Minimize sets the objective; a later call replaces the earlier one.
func (b *Builder) Minimize(f *expr.Node) *Builder {
	b.goal = f
	return b
}

// EpsH sets the equality relaxation used when optimizing.
func (b *Builder) EpsH(eps float64) *Builder {
	b.epsH = eps
	return b
}

// Build validates the description and compiles every expression.
//
// Errors:
//   - ErrNoVariables: no Var call.
//   - ErrDuplicateVar: two variables share a name.
//   - ErrBadDomain: lo > hi, a NaN bound, or a negative EpsH.
//   - ErrBadRelation: unknown relation or empty right-hand side.
//   - ErrArity: an expression reads an undeclared variable or has a nil argument.
func (b *Builder) Build() (*System, error) {
	n := len(b.vars)
	if n == 0 {
		return nil, fmt.Errorf("system.%s: %w", methodBuild, ErrNoVariables)
	}
	if math.IsNaN(b.epsH) || b.epsH < 0 {
		return nil, systemErrorf(methodBuild, "eps_h=%g", ErrBadDomain, b.epsH)
	}

	sys := &System{Vars: append([]string(nil), b.vars...), Domain: make(vector.Vector, n), EpsH: b.epsH}
	seen := make(map[string]bool, n)
	for i, name := range b.vars {
		if seen[name] {
			return nil, systemErrorf(methodVar, "%q", ErrDuplicateVar, name)
		}
		seen[name] = true
		lo, hi := b.bounds[i][0], b.bounds[i][1]
		if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
			return nil, systemErrorf(methodVar, "%s in [%g, %g]", ErrBadDomain, name, lo, hi)
		}
		sys.Domain[i] = interval.New(lo, hi)
		if sys.Domain[i].IsEmpty() {
			return nil, systemErrorf(methodVar, "%s in [%g, %g]", ErrBadDomain, name, lo, hi)
		}
	}

	for _, p := range b.cons {
		if p.op < EQ || p.op > IN || p.rhs.IsEmpty() {
			return nil, systemErrorf(methodBuild, "%s: %v %v", ErrBadRelation, p.name, p.op, p.rhs)
		}
		f, err := expr.New(p.root, n)
		if err != nil {
			return nil, fmt.Errorf("system.%s: %s: %w: %w", methodBuild, p.name, ErrArity, err)
		}
		sys.Constraints = append(sys.Constraints, Constraint{Name: p.name, F: f, Op: p.op, RHS: p.rhs})
	}

	if b.goal != nil {
		g, err := expr.New(b.goal, n)
		if err != nil {
			return nil, fmt.Errorf("system.%s: goal: %w: %w", methodBuild, ErrArity, err)
		}
		sys.Goal = g
	}

	return sys, nil
}
