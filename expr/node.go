// SPDX-License-Identifier: MIT

package expr

import (
	"github.com/katalvlaran/ivlath/interval"
)

// Op is the kind of an expression node.
type Op int

// Node kinds.
const (
	OpVar Op = iota
	OpConst
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpSqr
	OpPow
	OpSqrt
	OpExp
	OpLog
	OpSin
	OpCos
	OpTan
	OpAtan
	OpAtan2
	OpSinh
	OpCosh
	OpTanh
	OpAbs
	OpMin
	OpMax
)

var opNames = [...]string{
	OpVar: "var", OpConst: "const", OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
	OpNeg: "-", OpSqr: "sqr", OpPow: "pow", OpSqrt: "sqrt", OpExp: "exp", OpLog: "log",
	OpSin: "sin", OpCos: "cos", OpTan: "tan", OpAtan: "atan", OpAtan2: "atan2",
	OpSinh: "sinh", OpCosh: "cosh", OpTanh: "tanh", OpAbs: "abs", OpMin: "min", OpMax: "max",
}

// String returns the operator symbol or function name.
func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}

	return "op?"
}

// binary reports whether the node has two arguments.
func (o Op) binary() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv, OpAtan2, OpMin, OpMax:
		return true
	default:
		return false
	}
}

// Node is a vertex of an expression DAG. Nodes are immutable once built.
type Node struct {
	op   Op
	a, b *Node
	idx  int               // OpVar: variable index
	val  interval.Interval // OpConst: value
	exp  int               // OpPow: integer exponent
}

// Op returns the node kind.
func (n *Node) Op() Op { return n.op }

// X returns the i-th variable.
func X(i int) *Node { return &Node{op: OpVar, idx: i} }

// C returns a constant. Real constants that are not doubles should be given
// as enclosures with CI.
func C(v float64) *Node { return &Node{op: OpConst, val: interval.Point(v)} }

// CI returns an interval constant.
func CI(v interval.Interval) *Node { return &Node{op: OpConst, val: v} }

func un(op Op, a *Node) *Node     { return &Node{op: op, a: a} }
func bin(op Op, a, b *Node) *Node { return &Node{op: op, a: a, b: b} }

// Add returns a + b.
func Add(a, b *Node) *Node { return bin(OpAdd, a, b) }

// Sub returns a - b.
func Sub(a, b *Node) *Node { return bin(OpSub, a, b) }

// Mul returns a · b.
func Mul(a, b *Node) *Node { return bin(OpMul, a, b) }

// Div returns a / b.
func Div(a, b *Node) *Node { return bin(OpDiv, a, b) }

// Neg returns -a.
func Neg(a *Node) *Node { return un(OpNeg, a) }

// Sqr returns a².
func Sqr(a *Node) *Node { return un(OpSqr, a) }

// Pow returns aⁿ for an integer n.
func Pow(a *Node, n int) *Node { return &Node{op: OpPow, a: a, exp: n} }

// Sqrt returns √a.
func Sqrt(a *Node) *Node { return un(OpSqrt, a) }

// Exp returns eᵃ.
func Exp(a *Node) *Node { return un(OpExp, a) }

// Log returns ln a.
func Log(a *Node) *Node { return un(OpLog, a) }

// Sin returns sin a.
func Sin(a *Node) *Node { return un(OpSin, a) }

// Cos returns cos a.
func Cos(a *Node) *Node { return un(OpCos, a) }

// Tan returns tan a.
func Tan(a *Node) *Node { return un(OpTan, a) }

// Atan returns arctan a.
func Atan(a *Node) *Node { return un(OpAtan, a) }

// Atan2 returns atan2(y, x).
func Atan2(y, x *Node) *Node { return bin(OpAtan2, y, x) }

// Sinh returns sinh a.
func Sinh(a *Node) *Node { return un(OpSinh, a) }

// Cosh returns cosh a.
func Cosh(a *Node) *Node { return un(OpCosh, a) }

// Tanh returns tanh a.
func Tanh(a *Node) *Node { return un(OpTanh, a) }

// Abs returns |a|.
func Abs(a *Node) *Node { return un(OpAbs, a) }

// Min returns min(a, b).
func Min(a, b *Node) *Node { return bin(OpMin, a, b) }

// Max returns max(a, b).
func Max(a, b *Node) *Node { return bin(OpMax, a, b) }

// Sum returns the sum of the terms (C(0) when there is none).
func Sum(terms ...*Node) *Node {
	if len(terms) == 0 {
		return C(0)
	}
	s := terms[0]
	for _, t := range terms[1:] {
		s = Add(s, t)
	}

	return s
}
