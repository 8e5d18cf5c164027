// SPDX-License-Identifier: MIT

package expr

import (
	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/vector"
)

// Backward narrows box so that the function's value lies in rhs
// (forward-backward projection, HC4-revise). It returns false, with box set
// empty, when no point of box satisfies the constraint.
func (f *Func) Backward(box vector.Vector, rhs interval.Interval) bool {
	return f.BackwardScratch(box, rhs, f.NewScratch())
}

// BackwardScratch is Backward with caller-provided working storage.
func (f *Func) BackwardScratch(box vector.Vector, rhs interval.Interval, s Scratch) bool {
	ok, _ := f.Revise(box, rhs, s)
	return ok
}

// Revise is BackwardScratch that also reports whether the forward
// enclosure over the input box already lay inside rhs (the constraint is
// entailed: every point of box, and of any sub-box, satisfies it). An
// entailed constraint leaves box unchanged.
//
// Nodes are visited in reverse topological order, so a shared node is
// narrowed by every parent before it projects onto its own arguments. Each
// occurrence of a variable intersects its restriction into the variable's
// domain, which makes repeated occurrences cumulative.
func (f *Func) Revise(box vector.Vector, rhs interval.Interval, s Scratch) (ok, entailed bool) {
	f.checkBox("Backward", box)
	last := len(f.nodes) - 1
	y := f.Forward(box, s)
	if !y.IsEmpty() && y.IsSubset(rhs) {
		return true, true
	}
	s[last] = y.Inter(rhs)
	if s[last].IsEmpty() {
		box.SetEmpty()
		return false, false
	}
	for i := last; i >= 0; i-- {
		if !f.project(i, box, s) {
			box.SetEmpty()
			return false, false
		}
	}

	return true, false
}

// project narrows the arguments of node i from its current enclosure s[i].
func (f *Func) project(i int, box vector.Vector, s Scratch) bool {
	n := f.nodes[i]
	y := s[i]
	if y.IsEmpty() {
		return false
	}
	a, b := f.args[i][0], f.args[i][1]

	switch n.op {
	case OpVar:
		box[n.idx] = box[n.idx].Inter(y)
		return !box[n.idx].IsEmpty()
	case OpConst:
		return true
	case OpAdd:
		return interval.BwdAdd(y, &s[a], &s[b])
	case OpSub:
		return interval.BwdSub(y, &s[a], &s[b])
	case OpMul:
		return interval.BwdMul(y, &s[a], &s[b])
	case OpDiv:
		return interval.BwdDiv(y, &s[a], &s[b])
	case OpNeg:
		return interval.BwdNeg(y, &s[a])
	case OpSqr:
		return interval.BwdSqr(y, &s[a])
	case OpPow:
		return interval.BwdPow(y, n.exp, &s[a])
	case OpSqrt:
		return interval.BwdSqrt(y, &s[a])
	case OpExp:
		return interval.BwdExp(y, &s[a])
	case OpLog:
		return interval.BwdLog(y, &s[a])
	case OpSin:
		return interval.BwdSin(y, &s[a])
	case OpCos:
		return interval.BwdCos(y, &s[a])
	case OpTan:
		return interval.BwdTan(y, &s[a])
	case OpAtan:
		return interval.BwdAtan(y, &s[a])
	case OpAtan2:
		return interval.BwdAtan2(y, &s[a], &s[b])
	case OpSinh:
		return interval.BwdSinh(y, &s[a])
	case OpCosh:
		return interval.BwdCosh(y, &s[a])
	case OpTanh:
		return interval.BwdTanh(y, &s[a])
	case OpAbs:
		return interval.BwdAbs(y, &s[a])
	case OpMin:
		return interval.BwdMin(y, &s[a], &s[b])
	case OpMax:
		return interval.BwdMax(y, &s[a], &s[b])
	default:
		return true
	}
}
