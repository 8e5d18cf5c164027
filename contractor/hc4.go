// SPDX-License-Identifier: MIT

package contractor

import (
	"github.com/katalvlaran/ivlath/cell"
	"github.com/katalvlaran/ivlath/expr"
	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/system"
	"github.com/katalvlaran/ivlath/vector"
)

// HC4Revise is forward-backward propagation of one constraint.
type HC4Revise struct {
	f        *expr.Func
	image    interval.Interval
	n        int
	vars     []int
	s        expr.Scratch
	old      []interval.Interval // domains of vars before the last call
	entailed bool
}

// NewHC4Revise returns the revise contractor of c over n variables. Reads
// WithEpsH.
func NewHC4Revise(c system.Constraint, n int, opts ...Option) *HC4Revise {
	o := gatherOptions(opts...)
	if c.F.NumVars() > n {
		mustNb("NewHC4Revise", n, c.F.NumVars())
	}
	vars := c.F.Vars()

	return &HC4Revise{
		f:     c.F,
		image: c.Image(o.epsH),
		n:     n,
		vars:  vars,
		s:     c.F.NewScratch(),
		old:   make([]interval.Interval, len(vars)),
	}
}

// Contract implements Contractor.
func (r *HC4Revise) Contract(box vector.Vector) Status {
	if box.IsEmpty() {
		return Empty
	}
	for k, v := range r.vars {
		r.old[k] = box[v]
	}
	ok, entailed := r.f.Revise(box, r.image, r.s)
	r.entailed = entailed
	if !ok {
		return Empty
	}
	for k, v := range r.vars {
		if !r.old[k].Equal(box[v]) {
			return Narrowed
		}
	}

	return Unchanged
}

// Entailed reports whether the last call found the constraint satisfied by
// every point of its box.
func (r *HC4Revise) Entailed() bool { return r.entailed }

// Clone implements Contractor.
func (r *HC4Revise) Clone() Contractor {
	return &HC4Revise{
		f:     r.f,
		image: r.image,
		n:     r.n,
		vars:  r.vars,
		s:     r.f.NewScratch(),
		old:   make([]interval.Interval, len(r.vars)),
	}
}

// Nb implements Contractor.
func (r *HC4Revise) Nb() int { return r.n }

// ActiveKind is the kind of the HC4 active-constraint property.
const ActiveKind cell.PropKind = "contractor.hc4-active"

// Active marks the constraints not yet known to be entailed on a cell.
// Entailment is inherited by every sub-box, so bisection copies the mask
// and contraction only clears entries.
type Active struct{ On []bool }

// Kind returns ActiveKind.
func (a *Active) Kind() cell.PropKind { return ActiveKind }

// Copy returns an independent copy of the mask.
func (a *Active) Copy() cell.Property { return &Active{On: append([]bool(nil), a.On...)} }

// Update does nothing; only contraction clears entries.
func (a *Active) Update(box vector.Vector) {}

// Count returns the number of active constraints.
func (a *Active) Count() int {
	n := 0
	for _, on := range a.On {
		if on {
			n++
		}
	}

	return n
}

// HC4 propagates every constraint of a system with a revision queue: when
// a revision narrows a variable by more than the ratio threshold, the other
// constraints reading it are scheduled again.
type HC4 struct {
	revs    []*HC4Revise
	byVar   [][]int
	n       int
	ratio   float64
	maxIter int

	queue []int
	inQ   []bool
}

// NewHC4 returns the propagation contractor of sys. Reads WithEpsH,
// WithRatio and WithMaxIter (revisions allowed per constraint per call).
func NewHC4(sys *system.System, opts ...Option) *HC4 {
	o := gatherOptions(opts...)
	n := sys.N()
	h := &HC4{n: n, ratio: o.ratio, maxIter: o.maxIter, byVar: make([][]int, n)}
	for i, c := range sys.Constraints {
		r := NewHC4Revise(c, n, opts...)
		h.revs = append(h.revs, r)
		for _, v := range r.vars {
			h.byVar[v] = append(h.byVar[v], i)
		}
	}
	h.inQ = make([]bool, len(h.revs))

	return h
}

// Contract implements Contractor.
func (h *HC4) Contract(box vector.Vector) Status {
	return h.propagate(box, nil)
}

// ContractCell skips constraints already entailed on the cell and records
// the ones found entailed now.
func (h *HC4) ContractCell(c *cell.Cell) Status {
	var active *Active
	if p, ok := c.Props.Get(ActiveKind); ok {
		active = p.(*Active)
	}
	return h.propagate(c.Box, active)
}

// AddProperties attaches an all-active mask.
func (h *HC4) AddProperties(_ vector.Vector, props *cell.Properties) {
	on := make([]bool, len(h.revs))
	for i := range on {
		on[i] = true
	}
	props.Add(&Active{On: on})
}

func (h *HC4) propagate(box vector.Vector, active *Active) Status {
	if box.IsEmpty() {
		return Empty
	}
	h.queue = h.queue[:0]
	for i := range h.revs {
		if active == nil || active.On[i] {
			h.queue = append(h.queue, i)
			h.inQ[i] = true
		}
	}
	defer func() {
		for _, i := range h.queue {
			h.inQ[i] = false
		}
	}()

	st := Unchanged
	budget := h.maxIter * len(h.revs)
	revisions := 0
	for len(h.queue) > 0 && revisions < budget {
		i := h.queue[0]
		h.queue = h.queue[1:]
		h.inQ[i] = false
		revisions++

		r := h.revs[i]
		s := r.Contract(box)
		if active != nil && r.entailed {
			active.On[i] = false
		}
		switch s {
		case Empty:
			return Empty
		case Unchanged:
			continue
		}
		st = Narrowed
		for k, v := range r.vars {
			if r.old[k].RatioDelta(box[v]) <= h.ratio {
				continue
			}
			for _, j := range h.byVar[v] {
				if j != i && !h.inQ[j] && (active == nil || active.On[j]) {
					h.queue = append(h.queue, j)
					h.inQ[j] = true
				}
			}
		}
	}

	return st
}

// Clone implements Contractor.
func (h *HC4) Clone() Contractor {
	c := &HC4{n: h.n, ratio: h.ratio, maxIter: h.maxIter, byVar: h.byVar, inQ: make([]bool, len(h.revs))}
	for _, r := range h.revs {
		c.revs = append(c.revs, r.Clone().(*HC4Revise))
	}

	return c
}

// Nb implements Contractor.
func (h *HC4) Nb() int { return h.n }
