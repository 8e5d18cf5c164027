// SPDX-License-Identifier: MIT

package cell

import (
	"container/heap"
	"iter"
	"math"
	"math/rand/v2"
)

// Buffer is an ordered collection of live cells.
type Buffer interface {
	Push(c *Cell)
	// Pop removes and returns the next cell, nil when empty.
	Pop() *Cell
	// Top returns the next cell without removing it, nil when empty.
	Top() *Cell
	Len() int
	Empty() bool
	// Flush drops every cell.
	Flush()
	// Drain removes and returns every cell in pop order.
	Drain() []*Cell
	// All iterates over the live cells in no particular order.
	All() iter.Seq[*Cell]
}

func drain(b Buffer) []*Cell {
	out := make([]*Cell, 0, b.Len())
	for c := b.Pop(); c != nil; c = b.Pop() {
		out = append(out, c)
	}

	return out
}

func each(cells []*Cell) iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		for _, c := range cells {
			if !yield(c) {
				return
			}
		}
	}
}

// Stack pops the most recently pushed cell first.
type Stack struct{ cells []*Cell }

// NewStack returns an empty stack.
func NewStack() *Stack { return &Stack{} }

// Push adds c on top of the stack.
func (s *Stack) Push(c *Cell) { s.cells = append(s.cells, c) }

// Pop removes and returns the top cell, nil when empty.
func (s *Stack) Pop() *Cell {
	n := len(s.cells)
	if n == 0 {
		return nil
	}
	c := s.cells[n-1]
	s.cells[n-1] = nil
	s.cells = s.cells[:n-1]

	return c
}

// Top returns the top cell without removing it, nil when empty.
func (s *Stack) Top() *Cell {
	if len(s.cells) == 0 {
		return nil
	}
	return s.cells[len(s.cells)-1]
}

// Len returns the number of cells.
func (s *Stack) Len() int { return len(s.cells) }

// Empty reports whether the stack holds no cell.
func (s *Stack) Empty() bool { return len(s.cells) == 0 }

// Flush drops every cell.
func (s *Stack) Flush() { s.cells = nil }

// Drain removes and returns every cell, top first.
func (s *Stack) Drain() []*Cell { return drain(s) }

// All iterates over the cells from bottom to top.
func (s *Stack) All() iter.Seq[*Cell] { return each(s.cells) }

// Queue pops the least recently pushed cell first.
type Queue struct {
	cells []*Cell
	head  int
}

// NewQueue returns an empty queue.
func NewQueue() *Queue { return &Queue{} }

// Push appends c at the back of the queue.
func (q *Queue) Push(c *Cell) { q.cells = append(q.cells, c) }

// Pop removes and returns the front cell, nil when empty.
func (q *Queue) Pop() *Cell {
	if q.head == len(q.cells) {
		return nil
	}
	c := q.cells[q.head]
	q.cells[q.head] = nil
	q.head++
	if q.head == len(q.cells) {
		q.cells, q.head = q.cells[:0], 0
	} else if q.head > 64 && q.head*2 > len(q.cells) {
		// compact once the dead prefix dominates
		q.cells = append(q.cells[:0], q.cells[q.head:]...)
		q.head = 0
	}

	return c
}

// Top returns the front cell without removing it, nil when empty.
func (q *Queue) Top() *Cell {
	if q.head == len(q.cells) {
		return nil
	}
	return q.cells[q.head]
}

// Len returns the number of cells.
func (q *Queue) Len() int { return len(q.cells) - q.head }

// Empty reports whether the queue holds no cell.
func (q *Queue) Empty() bool { return q.Len() == 0 }

// Flush drops every cell.
func (q *Queue) Flush() { q.cells, q.head = nil, 0 }

// Drain removes and returns every cell, front first.
func (q *Queue) Drain() []*Cell { return drain(q) }

// All iterates over the cells from front to back.
func (q *Queue) All() iter.Seq[*Cell] { return each(q.cells[q.head:]) }

var inf = math.Inf(1)

// CostFunc orders heap cells; the lowest cost pops first.
type CostFunc func(c *Cell) float64

// LargestFirst favors the cell with the widest component.
func LargestFirst(c *Cell) float64 { return -c.Box.MaxDiam() }

// MinLB favors the cell with the lowest objective lower bound.
func MinLB(c *Cell) float64 { return c.Obj.LB() }

// MinUB favors the cell with the lowest objective upper bound.
func MinUB(c *Cell) float64 { return c.Obj.UB() }

// Depth favors the deepest cell.
func Depth(c *Cell) float64 { return -float64(c.Depth) }

// entry is a heap slot. In a DoubleHeap each cell has one entry per heap;
// popping one marks its twin dead, and dead entries are discarded lazily.
type entry struct {
	cell *Cell
	cost float64
	seq  uint64
	dead bool
	twin *entry
}

type entryPQ []*entry

func (pq entryPQ) Len() int { return len(pq) }

func (pq entryPQ) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].seq < pq[j].seq
}

func (pq entryPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *entryPQ) Push(x any) { *pq = append(*pq, x.(*entry)) }

func (pq *entryPQ) Pop() any {
	old := *pq
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return e
}

// skipDead discards popped entries left at the top by lazy deletion.
func (pq *entryPQ) skipDead() {
	for pq.Len() > 0 && (*pq)[0].dead {
		heap.Pop(pq)
	}
}

// Heap pops the cell with the lowest cost. Costs are computed once, at Push
// time; a cell whose bounds change must be popped and pushed again.
type Heap struct {
	cost CostFunc
	pq   entryPQ
	seq  uint64
}

// NewHeap returns an empty heap ordered by cost.
func NewHeap(cost CostFunc) *Heap { return &Heap{cost: cost} }

// Push adds c at the cost it has now.
func (h *Heap) Push(c *Cell) {
	h.seq++
	heap.Push(&h.pq, &entry{cell: c, cost: h.cost(c), seq: h.seq})
}

// Pop removes and returns the cheapest cell, nil when empty. Ties pop in
// push order.
func (h *Heap) Pop() *Cell {
	if h.pq.Len() == 0 {
		return nil
	}
	return heap.Pop(&h.pq).(*entry).cell
}

// Top returns the cheapest cell without removing it, nil when empty.
func (h *Heap) Top() *Cell {
	if h.pq.Len() == 0 {
		return nil
	}
	return h.pq[0].cell
}

// Len returns the number of cells.
func (h *Heap) Len() int { return h.pq.Len() }

// Empty reports whether the heap holds no cell.
func (h *Heap) Empty() bool { return h.pq.Len() == 0 }

// Flush drops every cell.
func (h *Heap) Flush() { h.pq = nil }

// Drain removes and returns every cell by increasing cost.
func (h *Heap) Drain() []*Cell { return drain(h) }

// All iterates over the cells in heap order.
func (h *Heap) All() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		for _, e := range h.pq {
			if !yield(e.cell) {
				return
			}
		}
	}
}

// TopCost returns the cost of the next cell (+Inf when empty).
func (h *Heap) TopCost() float64 {
	if h.pq.Len() == 0 {
		return inf
	}
	return h.pq[0].cost
}

// DoubleHeap keeps every cell in two heaps with different costs. Pop takes
// from the first heap with probability critPr and from the second otherwise;
// the popped cell leaves both heaps.
type DoubleHeap struct {
	first, second CostFunc
	h1, h2        entryPQ
	critPr        float64
	rnd           *rand.Rand
	useFirst      bool
	live          int
	seq           uint64
}

// NewDoubleHeap returns an empty double heap. critPr is clamped to [0, 1];
// seed makes the heap choice reproducible.
func NewDoubleHeap(first, second CostFunc, critPr float64, seed uint64) *DoubleHeap {
	d := &DoubleHeap{
		first:  first,
		second: second,
		critPr: min(max(critPr, 0), 1),
		rnd:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	d.roll()

	return d
}

func (d *DoubleHeap) roll() { d.useFirst = d.rnd.Float64() < d.critPr }

// Push adds c to both heaps.
func (d *DoubleHeap) Push(c *Cell) {
	d.seq++
	e1 := &entry{cell: c, cost: d.first(c), seq: d.seq}
	e2 := &entry{cell: c, cost: d.second(c), seq: d.seq, twin: e1}
	e1.twin = e2
	heap.Push(&d.h1, e1)
	heap.Push(&d.h2, e2)
	d.live++
}

// current returns the heap the next Pop uses.
func (d *DoubleHeap) current() *entryPQ {
	d.h1.skipDead()
	d.h2.skipDead()
	if d.useFirst {
		return &d.h1
	}
	return &d.h2
}

// Pop removes the next cell from both heaps and returns it, nil when
// empty. The heap used for the following Pop is drawn afresh.
func (d *DoubleHeap) Pop() *Cell {
	if d.live == 0 {
		return nil
	}
	pq := d.current()
	e := heap.Pop(pq).(*entry)
	e.twin.dead = true
	d.live--
	d.roll()

	return e.cell
}

// Top returns the cell the next Pop returns, nil when empty.
func (d *DoubleHeap) Top() *Cell {
	if d.live == 0 {
		return nil
	}
	return (*d.current())[0].cell
}

// Len returns the number of live cells.
func (d *DoubleHeap) Len() int { return d.live }

// Empty reports whether no live cell is left.
func (d *DoubleHeap) Empty() bool { return d.live == 0 }

// Flush drops every cell.
func (d *DoubleHeap) Flush() {
	d.h1, d.h2, d.live = nil, nil, 0
}

// Drain removes and returns every live cell in pop order.
func (d *DoubleHeap) Drain() []*Cell { return drain(d) }

// All iterates over the live cells in first-heap order.
func (d *DoubleHeap) All() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		for _, e := range d.h1 {
			if !e.dead && !yield(e.cell) {
				return
			}
		}
	}
}

// FirstTopCost returns the lowest first-heap cost (+Inf when empty).
func (d *DoubleHeap) FirstTopCost() float64 {
	if d.live == 0 {
		return inf
	}
	d.h1.skipDead()
	return d.h1[0].cost
}
