// SPDX-License-Identifier: MIT

package contractor

import (
	"github.com/katalvlaran/ivlath/cell"
	"github.com/katalvlaran/ivlath/vector"
)

// Compose applies its contractors in order to the same box and stops at
// the first Empty.
type Compose struct {
	list []Contractor
	n    int
}

// NewCompose returns the sequential composition of cs. Panics when the
// contractors disagree on the dimension or cs is empty.
func NewCompose(cs ...Contractor) *Compose {
	if len(cs) == 0 {
		panic("contractor: NewCompose: no contractor")
	}
	n := cs[0].Nb()
	for _, c := range cs[1:] {
		mustNb("NewCompose", n, c.Nb())
	}

	return &Compose{list: cs, n: n}
}

// Contract implements Contractor.
func (c *Compose) Contract(box vector.Vector) Status {
	if box.IsEmpty() {
		return Empty
	}
	st := Unchanged
	for _, sub := range c.list {
		s := sub.Contract(box)
		if s == Empty {
			box.SetEmpty()
			return Empty
		}
		st = merge(st, s)
	}

	return st
}

// Clone implements Contractor.
func (c *Compose) Clone() Contractor {
	list := make([]Contractor, len(c.list))
	for i, sub := range c.list {
		list[i] = sub.Clone()
	}

	return &Compose{list: list, n: c.n}
}

// Nb implements Contractor.
func (c *Compose) Nb() int { return c.n }

// ContractCell forwards the cell to property-aware sub-contractors.
func (c *Compose) ContractCell(cl *cell.Cell) Status {
	if cl.Box.IsEmpty() {
		return Empty
	}
	st := Unchanged
	for _, sub := range c.list {
		s := ContractCell(sub, cl)
		if s == Empty {
			cl.Box.SetEmpty()
			return Empty
		}
		st = merge(st, s)
	}

	return st
}

// AddProperties forwards to every sub-contractor.
func (c *Compose) AddProperties(box vector.Vector, props *cell.Properties) {
	for _, sub := range c.list {
		AddProperties(sub, box, props)
	}
}

// Fixpoint repeats a contractor until it narrows the box by less than the
// ratio threshold (relative to the previous box, worst dimension) or the
// iteration bound is reached.
type Fixpoint struct {
	inner   Contractor
	ratio   float64
	maxIter int
	prev    vector.Vector
}

// NewFixpoint wraps c. Reads WithRatio and WithMaxIter.
func NewFixpoint(c Contractor, opts ...Option) *Fixpoint {
	o := gatherOptions(opts...)
	return &Fixpoint{inner: c, ratio: o.ratio, maxIter: o.maxIter, prev: make(vector.Vector, c.Nb())}
}

// Contract implements Contractor.
func (f *Fixpoint) Contract(box vector.Vector) Status {
	return f.loop(box, func() Status { return f.inner.Contract(box) })
}

// ContractCell implements CellContractor.
func (f *Fixpoint) ContractCell(c *cell.Cell) Status {
	return f.loop(c.Box, func() Status { return ContractCell(f.inner, c) })
}

func (f *Fixpoint) loop(box vector.Vector, step func() Status) Status {
	if box.IsEmpty() {
		return Empty
	}
	st := Unchanged
	for it := 0; it < f.maxIter; it++ {
		f.prev.CopyFrom(box)
		s := step()
		if s == Empty {
			box.SetEmpty()
			return Empty
		}
		if s == Unchanged {
			break
		}
		st = Narrowed
		if f.prev.RelDistance(box) < f.ratio {
			break
		}
	}

	return st
}

// Clone implements Contractor.
func (f *Fixpoint) Clone() Contractor {
	return &Fixpoint{inner: f.inner.Clone(), ratio: f.ratio, maxIter: f.maxIter, prev: make(vector.Vector, f.inner.Nb())}
}

// Nb implements Contractor.
func (f *Fixpoint) Nb() int { return f.inner.Nb() }

// AddProperties forwards to the inner contractor.
func (f *Fixpoint) AddProperties(box vector.Vector, props *cell.Properties) { AddProperties(f.inner, box, props) }

// Union contracts a copy of the box with each contractor and keeps the
// hull of the non-empty results, which is sound for a disjunction of
// constraints.
type Union struct {
	list []Contractor
	n    int
}

// NewUnion returns the union of cs. Panics when the contractors disagree on
// the dimension or cs is empty.
func NewUnion(cs ...Contractor) *Union {
	if len(cs) == 0 {
		panic("contractor: NewUnion: no contractor")
	}
	n := cs[0].Nb()
	for _, c := range cs[1:] {
		mustNb("NewUnion", n, c.Nb())
	}

	return &Union{list: cs, n: n}
}

// Contract implements Contractor.
func (u *Union) Contract(box vector.Vector) Status {
	if box.IsEmpty() {
		return Empty
	}
	var hull vector.Vector
	for _, c := range u.list {
		b := box.Clone()
		if c.Contract(b) == Empty {
			continue
		}
		if hull == nil {
			hull = b
		} else {
			hull = hull.Hull(b)
		}
	}
	if hull == nil {
		box.SetEmpty()
		return Empty
	}
	before := box.Clone()
	box.InterInPlace(hull)

	return outcome(before, box)
}

// Clone implements Contractor.
func (u *Union) Clone() Contractor {
	list := make([]Contractor, len(u.list))
	for i, c := range u.list {
		list[i] = c.Clone()
	}

	return &Union{list: list, n: u.n}
}

// Nb implements Contractor.
func (u *Union) Nb() int { return u.n }

// Identity never narrows.
type Identity struct{ n int }

// NewIdentity returns the identity contractor on n variables.
func NewIdentity(n int) *Identity { return &Identity{n: n} }

// Contract returns Empty for an empty box and Unchanged otherwise.
func (c *Identity) Contract(box vector.Vector) Status {
	if box.IsEmpty() {
		return Empty
	}
	return Unchanged
}

// Clone implements Contractor.
func (c *Identity) Clone() Contractor { return &Identity{n: c.n} }

// Nb implements Contractor.
func (c *Identity) Nb() int { return c.n }

// Projection intersects the box with a fixed domain.
type Projection struct{ domain vector.Vector }

// NewProjection returns the projection onto a copy of domain.
func NewProjection(domain vector.Vector) *Projection {
	return &Projection{domain: domain.Clone()}
}

// Contract implements Contractor.
func (p *Projection) Contract(box vector.Vector) Status {
	if box.IsEmpty() {
		return Empty
	}
	before := box.Clone()
	if !box.InterInPlace(p.domain) {
		return Empty
	}

	return outcome(before, box)
}

// Clone implements Contractor; the domain is immutable and shared.
func (p *Projection) Clone() Contractor { return &Projection{domain: p.domain} }

// Nb implements Contractor.
func (p *Projection) Nb() int { return len(p.domain) }

// Counting counts the calls to a contractor.
type Counting struct {
	inner Contractor
	calls int
}

// NewCounting wraps c.
func NewCounting(c Contractor) *Counting { return &Counting{inner: c} }

// Contract implements Contractor.
func (c *Counting) Contract(box vector.Vector) Status {
	c.calls++
	return c.inner.Contract(box)
}

// Calls returns the number of Contract calls so far.
func (c *Counting) Calls() int { return c.calls }

// Clone returns a fresh counter around a clone of the inner contractor.
func (c *Counting) Clone() Contractor { return &Counting{inner: c.inner.Clone()} }

// Nb implements Contractor.
func (c *Counting) Nb() int { return c.inner.Nb() }
