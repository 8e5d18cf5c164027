// SPDX-License-Identifier: MIT

package bisector

import (
	"math"

	"github.com/katalvlaran/ivlath/cell"
	"github.com/katalvlaran/ivlath/system"
	"github.com/katalvlaran/ivlath/vector"
)

type smearMode int

const (
	smearMax smearMode = iota
	smearSum
	smearMaxRelative
)

var smearNames = [...]string{"SmearMax", "SmearSum", "SmearMaxRelative"}

// Smear splits the variable with the largest impact |∂fⱼ/∂xᵢ|·diam(xᵢ),
// where fⱼ ranges over the constraints and the objective. When every
// impact is zero (or undefined) it falls back to the widest variable.
type Smear struct {
	base
	sys      *system.System
	mode     smearMode
	fallback *LargestFirst
}

func newSmear(sys *system.System, mode smearMode, opts []Option) *Smear {
	o := gatherOptions(opts...)
	return &Smear{base: base{o}, sys: sys, mode: mode, fallback: &LargestFirst{base{o}}}
}

// NewSmearMax aggregates impacts by max over the functions.
func NewSmearMax(sys *system.System, opts ...Option) *Smear { return newSmear(sys, smearMax, opts) }

// NewSmearSum aggregates impacts by sum over the functions.
func NewSmearSum(sys *system.System, opts ...Option) *Smear { return newSmear(sys, smearSum, opts) }

// NewSmearMaxRelative normalizes each function's impacts to sum 1 and
// aggregates by max.
func NewSmearMaxRelative(sys *system.System, opts ...Option) *Smear {
	return newSmear(sys, smearMaxRelative, opts)
}

// gradients returns |∇f| magnitudes, one row per constraint and objective.
func (b *Smear) gradients(box vector.Vector) [][]float64 {
	var rows [][]float64
	add := func(g vector.Vector) {
		row := make([]float64, len(box))
		for i := range row {
			row[i] = g[i].Mag()
		}
		rows = append(rows, row)
	}
	for _, c := range b.sys.Constraints {
		add(c.F.Gradient(box))
	}
	if b.sys.Goal != nil {
		add(b.sys.Goal.Gradient(box))
	}

	return rows
}

// scores returns one impact per variable (-1 for variables that may not
// be bisected).
func (b *Smear) scores(box vector.Vector) []float64 {
	score := make([]float64, len(box))
	for i := range score {
		score[i] = -1
		if b.bisectable(box, i) {
			score[i] = 0
		}
	}
	for _, row := range b.gradients(box) {
		impact := make([]float64, len(box))
		total := 0.0
		for i := range impact {
			if score[i] < 0 {
				continue
			}
			impact[i] = row[i] * box[i].Diam()
			if math.IsNaN(impact[i]) {
				impact[i] = 0 // 0·Inf
			}
			total += impact[i]
		}
		for i, v := range impact {
			if score[i] < 0 {
				continue
			}
			switch b.mode {
			case smearSum:
				score[i] += v
			case smearMaxRelative:
				if total > 0 && !math.IsInf(total, 1) {
					score[i] = max(score[i], v/total)
				} else if math.IsInf(v, 1) {
					score[i] = max(score[i], 1)
				}
			default:
				score[i] = max(score[i], v)
			}
		}
	}

	return score
}

// Choose returns the bisectable variable of largest impact, lowest index
// on ties.
func (b *Smear) Choose(c *cell.Cell) (Point, error) {
	best, top := -1, 0.0
	for i, s := range b.scores(c.Box) {
		if s > top {
			best, top = i, s
		}
	}
	if best < 0 {
		p, err := b.fallback.Choose(c)
		if err != nil {
			return Point{}, noVariable(smearNames[b.mode], c.Box)
		}
		return p, nil
	}

	return Point{Var: best, Ratio: b.opts.ratio}, nil
}

// Bisect splits c at the chosen point.
func (b *Smear) Bisect(c *cell.Cell) (*cell.Cell, *cell.Cell, error) {
	p, err := b.Choose(c)
	if err != nil {
		return nil, nil, err
	}
	l, r := b.split(c, p)

	return l, r, nil
}
