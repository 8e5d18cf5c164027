// SPDX-License-Identifier: MIT

package contractor

import (
	"fmt"

	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/matrix"
	"github.com/katalvlaran/ivlath/matrix/ops"
	"github.com/katalvlaran/ivlath/system"
	"github.com/katalvlaran/ivlath/vector"
)

// square holds the equalities f(x) ∈ image of a square system.
type square struct {
	sys    *system.System // equalities only
	images []interval.Interval
	n      int
	opts   Options
}

func newSquare(op string, sys *system.System, o Options) (square, error) {
	eq := sys.Equalities()
	if len(eq) != sys.N() {
		return square{}, fmt.Errorf("contractor.%s: %d equalities, %d variables: %w", op, len(eq), sys.N(), ErrNotSquare)
	}
	sub := sys.Sub(eq)
	images := make([]interval.Interval, len(eq))
	for i, c := range sub.Constraints {
		images[i] = c.Image(o.epsH)
	}

	return square{sys: sub, images: images, n: sys.N(), opts: o}, nil
}

// applies reports whether the box is narrow and bounded enough.
func (q *square) applies(box vector.Vector) bool {
	return !box.IsUnbounded() && !(box.MaxDiam() > q.opts.ceil)
}

// residual returns f(mid) - image, an enclosure of the values f(mid) - r
// over the admissible right-hand sides r.
func (q *square) residual(mid []float64) (vector.Vector, error) {
	pt := vector.FromPoint(mid)
	fx := make(vector.Vector, q.n)
	for i, c := range q.sys.Constraints {
		fx[i] = c.F.Eval(pt).Sub(q.images[i])
		if fx[i].IsEmpty() {
			return nil, fmt.Errorf("%s at %v: %w", c.Name, mid, ErrUndefined)
		}
	}

	return fx, nil
}

// iterate runs step until the box stops shrinking by more than the ratio
// threshold. Degenerate steps are reported and end the loop.
func (q *square) iterate(name string, box vector.Vector, step func(vector.Vector) (bool, error)) Status {
	if box.IsEmpty() {
		return Empty
	}
	if !q.applies(box) {
		return Unchanged
	}
	st := Unchanged
	prev := make(vector.Vector, q.n)
	for it := 0; it < q.opts.maxIter; it++ {
		prev.CopyFrom(box)
		ok, err := step(box)
		if err != nil {
			q.opts.esc.Report(name, err)
			break
		}
		if !ok {
			box.SetEmpty()
			return Empty
		}
		if prev.Equal(box) {
			break
		}
		st = Narrowed
		if prev.RelDistance(box) < q.opts.ratio {
			break
		}
	}

	return st
}

// Newton is the interval Newton contractor in Hansen-Sengupta form: one
// preconditioned Gauss-Seidel sweep on J(x)·(y - x̃) = -(f(x̃) - rhs) per
// iteration, with x̃ = mid(x) and C = Inverse(mid(J)).
type Newton struct{ square }

// NewNewton returns the Newton contractor of the equalities of sys. Reads
// WithCeil, WithRatio, WithMaxIter, WithEpsH and WithEscalation.
//
// Errors:
//   - ErrNotSquare when the equalities are not as many as the variables.
func NewNewton(sys *system.System, opts ...Option) (*Newton, error) {
	q, err := newSquare("NewNewton", sys, gatherOptions(opts...))
	if err != nil {
		return nil, err
	}

	return &Newton{q}, nil
}

// Contract implements Contractor.
func (c *Newton) Contract(box vector.Vector) Status {
	return c.iterate("Newton", box, c.Step)
}

// Step applies one Hansen-Sengupta sweep to box, ignoring the width
// ceiling. It returns false when box holds no solution; on error the box
// is left unchanged.
func (c *Newton) Step(box vector.Vector) (bool, error) {
	mid := box.Mid()
	fx, err := c.residual(mid)
	if err != nil {
		return true, err
	}
	a, b, err := ops.Precondition(c.sys.Jacobian(box), fx.Neg())
	if err != nil {
		return true, err
	}
	x0 := vector.FromPoint(mid)
	d := box.Sub(x0)
	if !ops.GaussSeidel(a, b, d) {
		return false, nil
	}

	return box.InterInPlace(x0.Add(d)), nil
}

// Image returns the preconditioned interval Newton operator of box in
// Jacobi form, x̃ + Γ with Γᵢ = (bᵢ - Σ_{j≠i} aᵢⱼ·(xⱼ - x̃ⱼ)) / aᵢᵢ. It is
// not intersected with box. An error is returned when a diagonal of the
// preconditioned Jacobian contains 0.
func (c *Newton) Image(box vector.Vector) (vector.Vector, error) {
	mid := box.Mid()
	fx, err := c.residual(mid)
	if err != nil {
		return nil, err
	}
	a, b, err := ops.Precondition(c.sys.Jacobian(box), fx.Neg())
	if err != nil {
		return nil, err
	}
	x0 := vector.FromPoint(mid)
	d := box.Sub(x0)
	out := make(vector.Vector, c.n)
	for i := range out {
		if a.At(i, i).Contains(0) {
			return nil, fmt.Errorf("Newton: diagonal %d is %v: %w", i, a.At(i, i), matrix.ErrSingular)
		}
		s := b[i]
		for j := range d {
			if j != i {
				s = s.Sub(a.At(i, j).Mul(d[j]))
			}
		}
		out[i] = x0[i].Add(s.Div(a.At(i, i)))
	}

	return out, nil
}

// Clone implements Contractor.
func (c *Newton) Clone() Contractor { return &Newton{c.square} }

// Nb implements Contractor.
func (c *Newton) Nb() int { return c.n }

// Krawczyk applies the Krawczyk operator
//
//	K(x) = x̃ - C·(f(x̃) - rhs) + (I - C·J(x))·(x - x̃)
//
// and replaces x by x ∩ K(x). K(x) ⊆ int(x) proves that x holds a unique
// solution.
type Krawczyk struct{ square }

// NewKrawczyk returns the Krawczyk contractor of the equalities of sys.
// Reads the same options as NewNewton.
func NewKrawczyk(sys *system.System, opts ...Option) (*Krawczyk, error) {
	q, err := newSquare("NewKrawczyk", sys, gatherOptions(opts...))
	if err != nil {
		return nil, err
	}

	return &Krawczyk{q}, nil
}

// Image returns K(box); it implements Stepper.
func (c *Krawczyk) Image(box vector.Vector) (vector.Vector, error) { return c.Operator(box) }

// Operator returns K(x), or an error when the midpoint Jacobian is
// singular or f is undefined at the midpoint.
func (c *Krawczyk) Operator(box vector.Vector) (vector.Vector, error) {
	mid := box.Mid()
	fx, err := c.residual(mid)
	if err != nil {
		return nil, err
	}
	j := c.sys.Jacobian(box)
	inv, err := ops.MidInverse(j)
	if err != nil {
		return nil, fmt.Errorf("Krawczyk: %w", err)
	}
	x0 := vector.FromPoint(mid)
	r := matrix.IdentityInterval(c.n).Sub(matrix.MulDense(inv, j))

	return x0.Sub(matrix.MulDenseVec(inv, fx)).Add(r.MulVec(box.Sub(x0))), nil
}

// Contract implements Contractor.
func (c *Krawczyk) Contract(box vector.Vector) Status {
	return c.iterate("Krawczyk", box, c.Step)
}

// Step replaces box by box ∩ K(box), ignoring the width ceiling.
func (c *Krawczyk) Step(box vector.Vector) (bool, error) {
	k, err := c.Operator(box)
	if err != nil {
		return true, err
	}

	return box.InterInPlace(k), nil
}

// Clone implements Contractor.
func (c *Krawczyk) Clone() Contractor { return &Krawczyk{c.square} }

// Nb implements Contractor.
func (c *Krawczyk) Nb() int { return c.n }

// Stepper is a Newton-type operator. Image(x) encloses every solution in
// x, and Image(x) ⊆ int(x) proves that x holds a unique solution.
type Stepper interface {
	Contractor
	Image(box vector.Vector) (vector.Vector, error)
}

// Inflating runs ε-inflation around a Stepper: the current box is inflated
// and replaced by the operator image of its inflation, until the image lands
// strictly inside the inflated box, which proves that it holds a solution.
// The input box is narrowed only by rounds whose inflation contains it, so
// no solution of the input box is ever lost.
type Inflating struct {
	prover     Stepper
	delta, chi float64
	maxIter    int
	esc        *Escalation

	proved  bool
	witness vector.Vector
}

// NewInflating wraps prover. Reads WithInflation, WithMaxIter and
// WithEscalation.
func NewInflating(prover Stepper, opts ...Option) *Inflating {
	o := gatherOptions(opts...)
	return &Inflating{prover: prover, delta: o.delta, chi: o.chi, maxIter: o.maxIter, esc: o.esc}
}

// Contract implements Contractor. Proved and Witness describe the outcome
// of the last call.
func (c *Inflating) Contract(box vector.Vector) Status {
	c.proved, c.witness = false, nil
	if box.IsEmpty() {
		return Empty
	}
	before := box.Clone()
	x := box.Clone()
	for it := 0; it < c.maxIter; it++ {
		infl := x.Inflate(c.delta, c.chi)
		if infl.IsUnbounded() {
			break
		}
		y, err := c.prover.Image(infl)
		if err != nil {
			c.esc.Report("Inflating", err)
			break
		}
		if box.IsSubset(infl) && !box.InterInPlace(y) {
			return Empty
		}
		if y.IsInteriorSubset(infl) {
			c.proved, c.witness = true, y
			break
		}
		if y.Equal(x) {
			break
		}
		x = y
	}

	return outcome(before, box)
}

// Proved reports whether the last call proved the existence of a solution
// in Witness.
func (c *Inflating) Proved() bool { return c.proved }

// Witness returns the box proven to hold a solution (nil when not proved).
func (c *Inflating) Witness() vector.Vector { return c.witness }

// Clone implements Contractor.
func (c *Inflating) Clone() Contractor {
	return &Inflating{
		prover:  c.prover.Clone().(Stepper),
		delta:   c.delta,
		chi:     c.chi,
		maxIter: c.maxIter,
		esc:     c.esc,
	}
}

// Nb implements Contractor.
func (c *Inflating) Nb() int { return c.prover.Nb() }
