// SPDX-License-Identifier: MIT

package expr

import (
	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/vector"
)

var two = interval.Point(2)

// Gradient returns an enclosure of ∇f over box, one component per
// variable, by reverse-mode accumulation of interval adjoints. Variables
// the function does not read get [0, 0]. Non-smooth nodes contribute the
// hull of their one-sided derivatives (sign for abs, [0, 1] for a tied
// min or max). A derivative undefined somewhere on the box (√ at 0)
// contributes the whole real line, so the result is never empty for a
// non-empty box.
func (f *Func) Gradient(box vector.Vector) vector.Vector {
	if box.IsEmpty() {
		return vector.Empty(f.nvars)
	}
	s := f.NewScratch()
	f.Forward(box, s)

	g := make(vector.Vector, f.nvars)
	adj := make([]interval.Interval, len(f.nodes))
	adj[len(adj)-1] = interval.One
	for i := len(f.nodes) - 1; i >= 0; i-- {
		d := adj[i]
		if d.LB() == 0 && d.UB() == 0 {
			continue
		}
		n := f.nodes[i]
		a, b := f.args[i][0], f.args[i][1]
		acc := func(k int, v interval.Interval) {
			if v.IsEmpty() {
				v = interval.AllReals
			}
			adj[k] = adj[k].Add(v)
		}

		switch n.op {
		case OpVar:
			g[n.idx] = g[n.idx].Add(d)
		case OpConst:
		case OpAdd:
			acc(a, d)
			acc(b, d)
		case OpSub:
			acc(a, d)
			acc(b, d.Neg())
		case OpMul:
			acc(a, d.Mul(s[b]))
			acc(b, d.Mul(s[a]))
		case OpDiv:
			acc(a, d.Div(s[b]))
			acc(b, d.Mul(s[i]).Div(s[b]).Neg())
		case OpNeg:
			acc(a, d.Neg())
		case OpSqr:
			acc(a, d.Mul(s[a].Mul(two)))
		case OpPow:
			if n.exp != 0 {
				acc(a, d.Mul(s[a].Pow(n.exp-1).MulScalar(float64(n.exp))))
			}
		case OpSqrt:
			acc(a, d.Div(s[i].Mul(two)))
		case OpExp:
			acc(a, d.Mul(s[i]))
		case OpLog:
			acc(a, d.Div(s[a]))
		case OpSin:
			acc(a, d.Mul(s[a].Cos()))
		case OpCos:
			acc(a, d.Mul(s[a].Sin().Neg()))
		case OpTan:
			acc(a, d.Mul(interval.One.Add(s[i].Sqr())))
		case OpAtan:
			acc(a, d.Div(interval.One.Add(s[a].Sqr())))
		case OpAtan2:
			// θ = atan2(y, x): ∂θ/∂y = x/(x²+y²), ∂θ/∂x = -y/(x²+y²).
			r := s[a].Sqr().Add(s[b].Sqr())
			acc(a, d.Mul(s[b]).Div(r))
			acc(b, d.Mul(s[a]).Div(r).Neg())
		case OpSinh:
			acc(a, d.Mul(s[a].Cosh()))
		case OpCosh:
			acc(a, d.Mul(s[a].Sinh()))
		case OpTanh:
			acc(a, d.Mul(interval.One.Sub(s[i].Sqr())))
		case OpAbs:
			acc(a, d.Mul(s[a].Sign()))
		case OpMin:
			da, db := minPartials(s[a], s[b])
			acc(a, d.Mul(da))
			acc(b, d.Mul(db))
		case OpMax:
			da, db := minPartials(s[b], s[a])
			acc(a, d.Mul(da))
			acc(b, d.Mul(db))
		}
	}

	return g
}

var unit = interval.New(0, 1)

// minPartials returns the partial derivatives of min(x, y).
func minPartials(x, y interval.Interval) (dx, dy interval.Interval) {
	switch {
	case x.UB() < y.LB():
		return interval.One, interval.Zero
	case y.UB() < x.LB():
		return interval.Zero, interval.One
	default:
		return unit, unit
	}
}
