// SPDX-License-Identifier: MIT

package cell

import (
	"slices"

	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/vector"
)

// PropKind identifies a property; a cell holds at most one property per kind.
type PropKind string

// Property is search-strategy state attached to a cell. It must stay
// consistent with the cell's box: Update is called whenever the box is
// replaced by a child box or contracted by a property-aware contractor.
type Property interface {
	Kind() PropKind
	Copy() Property
	Update(box vector.Vector)
}

// Properties is the property map of a cell. The zero value is ready to use.
type Properties struct {
	m map[PropKind]Property
}

// Add stores p, replacing any property of the same kind.
func (ps *Properties) Add(p Property) {
	if ps.m == nil {
		ps.m = make(map[PropKind]Property)
	}
	ps.m[p.Kind()] = p
}

// Get returns the property of kind k.
func (ps *Properties) Get(k PropKind) (Property, bool) {
	p, ok := ps.m[k]
	return p, ok
}

// Has reports whether a property of kind k is attached.
func (ps *Properties) Has(k PropKind) bool {
	_, ok := ps.m[k]
	return ok
}

// Len returns the number of properties.
func (ps *Properties) Len() int { return len(ps.m) }

// Kinds returns the attached kinds in sorted order.
func (ps *Properties) Kinds() []PropKind {
	ks := make([]PropKind, 0, len(ps.m))
	for k := range ps.m {
		ks = append(ks, k)
	}
	slices.Sort(ks)

	return ks
}

// Copy returns a deep copy (every property copied).
func (ps *Properties) Copy() *Properties {
	out := &Properties{}
	for _, p := range ps.m {
		out.Add(p.Copy())
	}

	return out
}

// Update propagates a box change to every property.
func (ps *Properties) Update(box vector.Vector) {
	for _, p := range ps.m {
		p.Update(box)
	}
}

// Cell is a box under search with its properties.
type Cell struct {
	Box   vector.Vector
	Props *Properties
	Depth int
	ID    uint64

	// Obj encloses the objective over Box; AllReals until an optimizer
	// evaluates it.
	Obj interval.Interval
}

// New returns a root cell owning a copy of box.
func New(box vector.Vector) *Cell {
	return &Cell{Box: box.Clone(), Props: &Properties{}, Obj: interval.AllReals}
}

// Split returns the two children of c over the given boxes. Each child gets
// its own copy of every property, updated for its box; the objective
// enclosure is inherited.
func (c *Cell) Split(left, right vector.Vector) (*Cell, *Cell) {
	return c.child(left), c.child(right)
}

func (c *Cell) child(box vector.Vector) *Cell {
	ch := &Cell{Box: box, Props: c.Props.Copy(), Depth: c.Depth + 1, Obj: c.Obj}
	ch.Props.Update(box)

	return ch
}
