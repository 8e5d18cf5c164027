// SPDX-License-Identifier: MIT

package expr

import (
	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/matrix"
	"github.com/katalvlaran/ivlath/vector"
)

var minusOne = interval.Point(-1)

// Hessian returns a NumVars×NumVars interval matrix enclosing ∇²f over box.
// Row j is the derivative of the gradient along x_j, computed
// forward-over-reverse: a tangent sweep along x_j, then a reverse sweep
// that carries the adjoints together with their tangents. Rows and columns
// of variables the function does not read are [0, 0]. A second derivative
// undefined somewhere on the box (a kink of abs, min or max inside it)
// contributes the whole real line.
func (f *Func) Hessian(box vector.Vector) *matrix.Matrix {
	n := f.nvars
	rows := make([]vector.Vector, n)
	if box.IsEmpty() {
		for j := range rows {
			rows[j] = vector.Empty(n)
		}
		return matrix.FromRows(rows)
	}
	for j := range rows {
		rows[j] = make(vector.Vector, n)
	}
	s := f.NewScratch()
	f.Forward(box, s)

	m := len(f.nodes)
	part := make([][2]interval.Interval, m)
	for i := range f.nodes {
		part[i][0], part[i][1] = f.partials(i, s)
	}
	tan := make([]interval.Interval, m)
	adj := make([]interval.Interval, m)
	dadj := make([]interval.Interval, m)
	for _, j := range f.vars {
		for i, nd := range f.nodes {
			a, b := f.args[i][0], f.args[i][1]
			switch {
			case nd.op == OpVar && nd.idx == j:
				tan[i] = interval.One
			case a < 0:
				tan[i] = interval.Zero
			default:
				t := part[i][0].Mul(tan[a])
				if b >= 0 {
					t = t.Add(part[i][1].Mul(tan[b]))
				}
				tan[i] = t
			}
		}

		clear(adj)
		clear(dadj)
		adj[m-1] = interval.One
		for i := m - 1; i >= 0; i-- {
			d, dd := adj[i], dadj[i]
			nd := f.nodes[i]
			if nd.op == OpVar {
				rows[j][nd.idx] = rows[j][nd.idx].Add(dd)
				continue
			}
			if isZero(d) && isZero(dd) {
				continue
			}
			dp0, dp1 := f.dpartials(i, s, tan)
			for k, dp := range [2]interval.Interval{dp0, dp1} {
				arg := f.args[i][k]
				if arg < 0 {
					continue
				}
				adj[arg] = adj[arg].Add(nonEmpty(d.Mul(part[i][k])))
				dadj[arg] = dadj[arg].Add(nonEmpty(dd.Mul(part[i][k]).Add(d.Mul(dp))))
			}
		}
	}

	// both triangles enclose the same mixed partials
	for j := range n {
		for k := j + 1; k < n; k++ {
			if v := rows[j][k].Inter(rows[k][j]); !v.IsEmpty() {
				rows[j][k], rows[k][j] = v, v
			}
		}
	}

	return matrix.FromRows(rows)
}

func isZero(x interval.Interval) bool { return x.LB() == 0 && x.UB() == 0 }

func nonEmpty(x interval.Interval) interval.Interval {
	if x.IsEmpty() {
		return interval.AllReals
	}
	return x
}

// operands returns the enclosures of the arguments of node i and of the
// node itself. A missing argument reads as [0, 0].
func (f *Func) operands(i int, s []interval.Interval) (u, v, w interval.Interval) {
	if a := f.args[i][0]; a >= 0 {
		u = s[a]
	}
	if b := f.args[i][1]; b >= 0 {
		v = s[b]
	}

	return u, v, s[i]
}

// partials encloses the derivatives of node i with respect to its first
// and second argument.
func (f *Func) partials(i int, s Scratch) (pa, pb interval.Interval) {
	u, v, w := f.operands(i, s)
	switch n := f.nodes[i]; n.op {
	case OpAdd:
		pa, pb = interval.One, interval.One
	case OpSub:
		pa, pb = interval.One, minusOne
	case OpMul:
		pa, pb = v, u
	case OpDiv:
		pa, pb = interval.One.Div(v), w.Div(v).Neg()
	case OpNeg:
		pa = minusOne
	case OpSqr:
		pa = u.Mul(two)
	case OpPow:
		if n.exp != 0 {
			pa = u.Pow(n.exp - 1).MulScalar(float64(n.exp))
		}
	case OpSqrt:
		pa = interval.One.Div(w.Mul(two))
	case OpExp:
		pa = w
	case OpLog:
		pa = interval.One.Div(u)
	case OpSin:
		pa = u.Cos()
	case OpCos:
		pa = u.Sin().Neg()
	case OpTan:
		pa = interval.One.Add(w.Sqr())
	case OpAtan:
		pa = interval.One.Div(interval.One.Add(u.Sqr()))
	case OpAtan2:
		r := u.Sqr().Add(v.Sqr())
		pa, pb = v.Div(r), u.Div(r).Neg()
	case OpSinh:
		pa = u.Cosh()
	case OpCosh:
		pa = u.Sinh()
	case OpTanh:
		pa = interval.One.Sub(w.Sqr())
	case OpAbs:
		pa = u.Sign()
	case OpMin:
		pa, pb = minPartials(u, v)
	case OpMax:
		pa, pb = minPartials(v, u)
	}

	return nonEmpty(pa), nonEmpty(pb)
}

// dpartials encloses the derivatives of the partials of node i along the
// direction whose node tangents are tan.
func (f *Func) dpartials(i int, s Scratch, tan []interval.Interval) (dpa, dpb interval.Interval) {
	u, v, w := f.operands(i, s)
	tu, tv, tw := f.operands(i, tan)
	switch n := f.nodes[i]; n.op {
	case OpMul:
		dpa, dpb = tv, tu
	case OpDiv:
		// pa = 1/v, pb = -u/v²
		v2 := v.Sqr()
		dpa = tv.Div(v2).Neg()
		dpb = w.Mul(tv).Mul(two).Sub(tu).Div(v2)
	case OpSqr:
		dpa = tu.Mul(two)
	case OpPow:
		if e := n.exp; e != 0 && e != 1 {
			dpa = u.Pow(e - 2).MulScalar(float64(e * (e - 1))).Mul(tu)
		}
	case OpSqrt:
		dpa = tw.Div(w.Sqr().Mul(two)).Neg()
	case OpExp:
		dpa = tw
	case OpLog:
		dpa = tu.Div(u.Sqr()).Neg()
	case OpSin:
		dpa = u.Sin().Mul(tu).Neg()
	case OpCos:
		dpa = u.Cos().Mul(tu).Neg()
	case OpTan:
		dpa = w.Mul(tw).Mul(two)
	case OpAtan:
		q := interval.One.Add(u.Sqr())
		dpa = u.Mul(tu).Mul(two).Div(q.Sqr()).Neg()
	case OpAtan2:
		r := u.Sqr().Add(v.Sqr())
		dr := u.Mul(tu).Add(v.Mul(tv)).Mul(two)
		r2 := r.Sqr()
		dpa = tv.Div(r).Sub(v.Mul(dr).Div(r2))
		dpb = u.Mul(dr).Div(r2).Sub(tu.Div(r))
	case OpSinh:
		dpa = u.Sinh().Mul(tu)
	case OpCosh:
		dpa = u.Cosh().Mul(tu)
	case OpTanh:
		dpa = w.Mul(tw).Mul(two).Neg()
	case OpAbs:
		dpa = kink(u.Contains(0), tu)
	case OpMin, OpMax:
		tied := !(u.UB() < v.LB() || v.UB() < u.LB())
		dpa, dpb = kink(tied, tu), kink(tied, tv)
	}

	return nonEmpty(dpa), nonEmpty(dpb)
}

// kink is the derivative of a partial that jumps inside the box.
func kink(inside bool, t interval.Interval) interval.Interval {
	if inside && !isZero(t) {
		return interval.AllReals
	}
	return interval.Zero
}
