package cell_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/cell"
	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/vector"
)

// widthProp records the width of the box it was last updated with.
type widthProp struct{ width float64 }

func (p *widthProp) Kind() cell.PropKind      { return "test.width" }
func (p *widthProp) Copy() cell.Property      { return &widthProp{width: p.width} }
func (p *widthProp) Update(box vector.Vector) { p.width = box.MaxDiam() }

var inf = math.Inf(1)

func box(bounds ...[2]float64) vector.Vector { return vector.NewFromBounds(bounds) }

func TestNewCopiesBox(t *testing.T) {
	t.Parallel()

	b := box([2]float64{0, 1})
	c := cell.New(b)
	b[0] = interval.Point(5)
	require.True(t, c.Box[0].Equal(interval.New(0, 1)))
	require.True(t, c.Obj.Equal(interval.AllReals))
	require.Equal(t, 0, c.Depth)
	require.Equal(t, 0, c.Props.Len())
}

func TestSplitCopiesProperties(t *testing.T) {
	t.Parallel()

	c := cell.New(box([2]float64{0, 4}, [2]float64{0, 1}))
	p := &widthProp{}
	c.Props.Add(p)
	p.Update(c.Box)
	c.Obj = interval.New(-1, 1)

	l, r := c.Box.Bisect(0, 0.5)
	left, right := c.Split(l, r)
	require.Equal(t, 1, left.Depth)
	require.Equal(t, 1, right.Depth)
	require.True(t, left.Obj.Equal(c.Obj))

	lp, ok := left.Props.Get("test.width")
	require.True(t, ok)
	rp, _ := right.Props.Get("test.width")
	require.NotSame(t, lp, rp, "siblings never share a property")
	require.NotSame(t, p, lp)
	assert.Equal(t, 2.0, lp.(*widthProp).width, "updated for the child box")
	assert.Equal(t, 4.0, p.width, "parent untouched")

	lp.(*widthProp).width = 99
	assert.Equal(t, 2.0, rp.(*widthProp).width)
	assert.Equal(t, []cell.PropKind{"test.width"}, left.Props.Kinds())
	assert.True(t, right.Props.Has("test.width"))
}

// cells returns n root cells whose ID is their index and whose box width
// is widths[i].
func cells(widths ...float64) []*cell.Cell {
	out := make([]*cell.Cell, len(widths))
	for i, w := range widths {
		out[i] = cell.New(box([2]float64{0, w}))
		out[i].ID = uint64(i)
	}

	return out
}

func ids(cs []*cell.Cell) []uint64 {
	out := make([]uint64, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}

	return out
}

func TestStackAndQueue(t *testing.T) {
	t.Parallel()

	s, q := cell.NewStack(), cell.NewQueue()
	require.Nil(t, s.Pop())
	require.Nil(t, q.Top())
	for _, c := range cells(1, 2, 3) {
		s.Push(c)
		q.Push(c)
	}
	require.Equal(t, uint64(2), s.Top().ID)
	require.Equal(t, uint64(0), q.Top().ID)
	require.Equal(t, 3, s.Len())
	require.Equal(t, []uint64{2, 1, 0}, ids(s.Drain()))
	require.Equal(t, []uint64{0, 1, 2}, ids(q.Drain()))
	require.True(t, s.Empty())
	require.True(t, q.Empty())
}

func TestStackAndQueueIterationOrder(t *testing.T) {
	t.Parallel()

	s, q := cell.NewStack(), cell.NewQueue()
	for _, c := range cells(1, 2, 3, 4) {
		s.Push(c)
		q.Push(c)
	}
	q.Pop()
	s.Pop()

	var fromStack, fromQueue []uint64
	for c := range s.All() {
		fromStack = append(fromStack, c.ID)
	}
	for c := range q.All() {
		fromQueue = append(fromQueue, c.ID)
	}
	require.Equal(t, []uint64{0, 1, 2}, fromStack, "bottom to top")
	require.Equal(t, []uint64{1, 2, 3}, fromQueue, "front to back")
	require.Equal(t, 3, q.Len())

	q.Flush()
	require.True(t, q.Empty())
	require.Nil(t, q.Pop())
}

func TestQueueCompaction(t *testing.T) {
	t.Parallel()

	q := cell.NewQueue()
	var next uint64
	for round := range 10 {
		for range 100 {
			c := cell.New(vector.New(1))
			c.ID = next
			next++
			q.Push(c)
		}
		for i := range 60 {
			c := q.Pop()
			require.Equal(t, uint64(round*60+i), c.ID)
		}
	}
	require.Equal(t, 400, q.Len())
	n := 0
	for range q.All() {
		n++
	}
	require.Equal(t, 400, n)
}

func TestHeapCosts(t *testing.T) {
	t.Parallel()

	h := cell.NewHeap(cell.LargestFirst)
	for _, c := range cells(1, 5, 3, 5) {
		h.Push(c)
	}
	require.Equal(t, -5.0, h.TopCost())
	require.Equal(t, []uint64{1, 3, 2, 0}, ids(h.Drain()), "ties pop in insertion order")
	require.Equal(t, inf, h.TopCost())

	byLB := cell.NewHeap(cell.MinLB)
	byUB := cell.NewHeap(cell.MinUB)
	cs := cells(1, 1, 1)
	cs[0].Obj = interval.New(0, 10)
	cs[1].Obj = interval.New(-1, 20)
	cs[2].Obj = interval.New(2, 3)
	for _, c := range cs {
		byLB.Push(c)
		byUB.Push(c)
	}
	require.Equal(t, uint64(1), byLB.Top().ID)
	require.Equal(t, uint64(2), byUB.Top().ID)

	deep := cell.NewHeap(cell.Depth)
	cs = cells(1, 1, 1)
	cs[1].Depth = 4
	cs[2].Depth = 2
	for _, c := range cs {
		deep.Push(c)
	}
	require.Equal(t, []uint64{1, 2, 0}, ids(deep.Drain()))

	h.Push(cs[0])
	h.Flush()
	require.True(t, h.Empty())
	require.Nil(t, h.Pop())
}

func TestDoubleHeap(t *testing.T) {
	t.Parallel()

	cs := cells(4, 1, 3, 2)
	for i, c := range cs {
		c.Obj = interval.New(float64(i), 10)
	}

	// critPr 1: always the first heap.
	d := cell.NewDoubleHeap(cell.LargestFirst, cell.MinLB, 1, 7)
	for _, c := range cs {
		d.Push(c)
	}
	require.Equal(t, 4, d.Len())
	require.Equal(t, -4.0, d.FirstTopCost())
	require.Equal(t, []uint64{0, 2, 3, 1}, ids(d.Drain()))

	// critPr 0: always the second heap.
	d = cell.NewDoubleHeap(cell.LargestFirst, cell.MinLB, 0, 7)
	for _, c := range cs {
		d.Push(c)
	}
	require.Equal(t, []uint64{0, 1, 2, 3}, ids(d.Drain()))

	// Mixed: every cell pops exactly once, Top agrees with Pop.
	d = cell.NewDoubleHeap(cell.LargestFirst, cell.MinLB, 0.5, 3)
	for _, c := range cells(5, 9, 1, 7, 3, 8, 2) {
		d.Push(c)
	}
	seen := map[uint64]bool{}
	for !d.Empty() {
		top := d.Top()
		c := d.Pop()
		require.Same(t, top, c)
		require.False(t, seen[c.ID])
		seen[c.ID] = true
		n := 0
		for range d.All() {
			n++
		}
		require.Equal(t, d.Len(), n)
	}
	require.Len(t, seen, 7)
}

func TestBuffersImplementInterface(t *testing.T) {
	t.Parallel()

	for _, b := range []cell.Buffer{
		cell.NewStack(),
		cell.NewQueue(),
		cell.NewHeap(cell.Depth),
		cell.NewDoubleHeap(cell.LargestFirst, cell.Depth, 0.5, 1),
	} {
		for _, c := range cells(1, 2, 3) {
			b.Push(c)
		}
		require.Equal(t, 3, b.Len())
		require.NotNil(t, b.Top())
		b.Flush()
		require.True(t, b.Empty())
		require.Nil(t, b.Top())
	}
}
