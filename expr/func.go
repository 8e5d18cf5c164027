// SPDX-License-Identifier: MIT

package expr

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/vector"
)

// Func is a compiled expression: its distinct nodes in topological order,
// each node's argument positions, and the number of variables it reads.
type Func struct {
	root  *Node
	nodes []*Node
	args  [][2]int // positions of the arguments in nodes, -1 when absent
	nvars int
	vars  []int // distinct variable indices, increasing
}

// Scratch holds one enclosure per node of a Func. It is the working storage
// of Forward and Backward; a Scratch must not be shared between goroutines.
type Scratch []interval.Interval

// New compiles root over nvars variables.
// Returns ErrNilExpr on a missing argument and ErrVarIndex when a variable
// index lies outside [0, nvars).
func New(root *Node, nvars int) (*Func, error) {
	f := &Func{root: root, nvars: nvars}
	seen := make(map[*Node]int)
	if _, err := f.visit(root, seen); err != nil {
		return nil, err
	}
	for _, n := range f.nodes {
		if n.op != OpVar {
			continue
		}
		if n.idx < 0 || n.idx >= nvars {
			return nil, fmt.Errorf("expr.New: x%d with %d variables: %w", n.idx, nvars, ErrVarIndex)
		}
		f.vars = append(f.vars, n.idx)
	}
	slices.Sort(f.vars)
	f.vars = slices.Compact(f.vars)

	return f, nil
}

// Compile compiles root over as many variables as its largest index needs.
func Compile(root *Node) (*Func, error) {
	return New(root, maxVar(root, make(map[*Node]bool))+1)
}

// MustCompile is Compile that panics on error; meant for package-level
// expression tables and tests.
func MustCompile(root *Node) *Func {
	f, err := Compile(root)
	if err != nil {
		panic(err)
	}

	return f
}

func maxVar(n *Node, seen map[*Node]bool) int {
	if n == nil || seen[n] {
		return -1
	}
	seen[n] = true
	if n.op == OpVar {
		return n.idx
	}

	return max(maxVar(n.a, seen), maxVar(n.b, seen))
}

// visit appends n after its arguments (post-order) and returns its position.
func (f *Func) visit(n *Node, seen map[*Node]int) (int, error) {
	if n == nil {
		return -1, ErrNilExpr
	}
	if i, ok := seen[n]; ok {
		return i, nil
	}
	pos := [2]int{-1, -1}
	if n.op != OpVar && n.op != OpConst {
		i, err := f.visit(n.a, seen)
		if err != nil {
			return -1, err
		}
		pos[0] = i
		if n.op.binary() {
			if pos[1], err = f.visit(n.b, seen); err != nil {
				return -1, err
			}
		}
	}
	seen[n] = len(f.nodes)
	f.nodes = append(f.nodes, n)
	f.args = append(f.args, pos)

	return seen[n], nil
}

// NumVars returns the number of variables the function is defined over.
func (f *Func) NumVars() int { return f.nvars }

// NumNodes returns the number of distinct nodes.
func (f *Func) NumNodes() int { return len(f.nodes) }

// Vars returns the distinct variable indices read by the function.
func (f *Func) Vars() []int { return slices.Clone(f.vars) }

// DependsOn reports whether variable i occurs in the function.
func (f *Func) DependsOn(i int) bool {
	_, ok := slices.BinarySearch(f.vars, i)
	return ok
}

// Root returns the expression the function was compiled from.
func (f *Func) Root() *Node { return f.root }

// NewScratch allocates working storage for Forward and Backward.
func (f *Func) NewScratch() Scratch { return make(Scratch, len(f.nodes)) }

func (f *Func) checkBox(op string, box vector.Vector) {
	if len(box) < f.nvars {
		panic(fmt.Errorf("expr.%s(%d vars, box %d): %w", op, f.nvars, len(box), vector.ErrDimensionMismatch))
	}
}

// Forward evaluates every node over box into s and returns the root
// enclosure. Panics if the box has fewer components than NumVars or s was
// not allocated by NewScratch.
func (f *Func) Forward(box vector.Vector, s Scratch) interval.Interval {
	f.checkBox("Forward", box)
	for i, n := range f.nodes {
		s[i] = f.apply(i, n, box, s)
	}

	return s[len(s)-1]
}

// Eval returns the natural interval extension of the function over box.
func (f *Func) Eval(box vector.Vector) interval.Interval {
	return f.Forward(box, f.NewScratch())
}

// EvalPoint returns a rigorous enclosure of the function at a real point.
func (f *Func) EvalPoint(pt []float64) interval.Interval {
	return f.Eval(vector.FromPoint(pt))
}

func (f *Func) apply(i int, n *Node, box vector.Vector, s Scratch) interval.Interval {
	var x, y interval.Interval
	if a := f.args[i][0]; a >= 0 {
		x = s[a]
	}
	if b := f.args[i][1]; b >= 0 {
		y = s[b]
	}

	switch n.op {
	case OpVar:
		return box[n.idx]
	case OpConst:
		return n.val
	case OpAdd:
		return x.Add(y)
	case OpSub:
		return x.Sub(y)
	case OpMul:
		return x.Mul(y)
	case OpDiv:
		return x.Div(y)
	case OpNeg:
		return x.Neg()
	case OpSqr:
		return x.Sqr()
	case OpPow:
		return x.Pow(n.exp)
	case OpSqrt:
		return x.Sqrt()
	case OpExp:
		return x.Exp()
	case OpLog:
		return x.Log()
	case OpSin:
		return x.Sin()
	case OpCos:
		return x.Cos()
	case OpTan:
		return x.Tan()
	case OpAtan:
		return x.Atan()
	case OpAtan2:
		return interval.Atan2(x, y)
	case OpSinh:
		return x.Sinh()
	case OpCosh:
		return x.Cosh()
	case OpTanh:
		return x.Tanh()
	case OpAbs:
		return x.Abs()
	case OpMin:
		return interval.Min(x, y)
	case OpMax:
		return interval.Max(x, y)
	default:
		panic(fmt.Sprintf("expr: unknown op %d", n.op))
	}
}
