// SPDX-License-Identifier: MIT

package bisector

import (
	"github.com/katalvlaran/ivlath/cell"
	"github.com/katalvlaran/ivlath/vector"
)

// LastVarKind is the kind of the property carrying the last split variable.
const LastVarKind cell.PropKind = "bisector.last-var"

// LastVar is the variable the cell's parent was split on (-1 at the root).
type LastVar struct{ Var int }

// Kind returns LastVarKind.
func (p *LastVar) Kind() cell.PropKind { return LastVarKind }

// Copy returns an independent LastVar with the same variable.
func (p *LastVar) Copy() cell.Property { return &LastVar{Var: p.Var} }

// Update does nothing: the split variable does not depend on the box.
func (p *LastVar) Update(box vector.Vector) {}

// RoundRobin cycles through the variables along each branch.
type RoundRobin struct{ base }

// NewRoundRobin returns a RoundRobin bisector.
func NewRoundRobin(opts ...Option) *RoundRobin {
	return &RoundRobin{base{gatherOptions(opts...)}}
}

// AddProperties attaches the LastVar property to a root cell.
func (b *RoundRobin) AddProperties(_ vector.Vector, props *cell.Properties) {
	if !props.Has(LastVarKind) {
		props.Add(&LastVar{Var: -1})
	}
}

func lastVar(c *cell.Cell) int {
	if p, ok := c.Props.Get(LastVarKind); ok {
		return p.(*LastVar).Var
	}
	return -1
}

// Choose returns the first bisectable variable after the last one.
func (b *RoundRobin) Choose(c *cell.Cell) (Point, error) {
	n := len(c.Box)
	last := lastVar(c)
	for k := 1; k <= n; k++ {
		i := ((last+k)%n + n) % n
		if b.bisectable(c.Box, i) {
			return Point{Var: i, Ratio: b.opts.ratio}, nil
		}
	}

	return Point{}, noVariable("RoundRobin", c.Box)
}

// Bisect splits c and records the split variable in both children.
func (b *RoundRobin) Bisect(c *cell.Cell) (*cell.Cell, *cell.Cell, error) {
	p, err := b.Choose(c)
	if err != nil {
		return nil, nil, err
	}
	l, r := b.split(c, p)
	l.Props.Add(&LastVar{Var: p.Var})
	r.Props.Add(&LastVar{Var: p.Var})

	return l, r, nil
}
