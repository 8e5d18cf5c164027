// SPDX-License-Identifier: MIT

package bisector

import (
	"fmt"

	"github.com/katalvlaran/ivlath/cell"
	"github.com/katalvlaran/ivlath/vector"
)

// Point is a bisection decision: split variable Var at lb + Ratio·diam.
type Point struct {
	Var   int
	Ratio float64
}

// Bisector selects where to split a cell.
type Bisector interface {
	Choose(c *cell.Cell) (Point, error)
	Bisect(c *cell.Cell) (left, right *cell.Cell, err error)
}

// base carries the options and the generic Bisect.
type base struct{ opts Options }

// bisectable reports whether variable i may be split.
func (b base) bisectable(box vector.Vector, i int) bool {
	x := box[i]
	return x.IsBisectable() && !(x.Diam() < b.opts.Prec(i))
}

// split applies p to c.
func (b base) split(c *cell.Cell, p Point) (*cell.Cell, *cell.Cell) {
	l, r := c.Box.Bisect(p.Var, p.Ratio)
	return c.Split(l, r)
}

func noVariable(name string, box vector.Vector) error {
	return fmt.Errorf("bisector.%s: box %v: %w", name, box, ErrNoBisectableVariable)
}

// LargestFirst splits the widest bisectable variable.
type LargestFirst struct{ base }

// NewLargestFirst returns a LargestFirst bisector.
func NewLargestFirst(opts ...Option) *LargestFirst {
	return &LargestFirst{base{gatherOptions(opts...)}}
}

// Choose returns the widest bisectable variable, lowest index on ties.
func (b *LargestFirst) Choose(c *cell.Cell) (Point, error) {
	best, width := -1, -1.0
	for i := range c.Box {
		if !b.bisectable(c.Box, i) {
			continue
		}
		if d := c.Box[i].Diam(); d > width {
			best, width = i, d
		}
	}
	if best < 0 {
		return Point{}, noVariable("LargestFirst", c.Box)
	}

	return Point{Var: best, Ratio: b.opts.ratio}, nil
}

// Bisect splits c at the chosen point.
func (b *LargestFirst) Bisect(c *cell.Cell) (*cell.Cell, *cell.Cell, error) {
	p, err := b.Choose(c)
	if err != nil {
		return nil, nil, err
	}
	l, r := b.split(c, p)

	return l, r, nil
}
