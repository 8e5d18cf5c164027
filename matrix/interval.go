// SPDX-License-Identifier: MIT

// Package matrix - interval matrix.
//
// Matrix holds intervals in row-major order. Like vector.Vector, a matrix is
// empty as soon as one entry is empty, and SetEmpty marks every entry.
// Accessors and operators panic on misuse (index out of range, shape
// mismatch): these are internal invariants of the solver, not user input.

package matrix

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/vector"
)

// Matrix is an r×c matrix of intervals.
type Matrix struct {
	r, c int
	data []interval.Interval
}

func mustShape(op string, r1, c1, r2, c2 int) {
	if r1 != r2 || c1 != c2 {
		panic(fmt.Errorf("Matrix.%s: %dx%d vs %dx%d: %w", op, r1, c1, r2, c2, ErrDimensionMismatch))
	}
}

// New returns an r×c interval matrix filled with [0, 0].
// It panics with ErrInvalidDimensions for negative sizes.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Errorf("matrix.New(%d,%d): %w", rows, cols, ErrInvalidDimensions))
	}

	return &Matrix{r: rows, c: cols, data: make([]interval.Interval, rows*cols)}
}

// IdentityInterval returns the n×n identity as degenerate intervals.
func IdentityInterval(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = interval.One
	}

	return m
}

// FromDense converts a real matrix into degenerate intervals.
func FromDense(d *Dense) *Matrix {
	m := New(d.r, d.c)
	for i, v := range d.data {
		m.data[i] = interval.Point(v)
	}

	return m
}

// FromRows builds a matrix from row vectors of equal length.
func FromRows(rows []vector.Vector) *Matrix {
	if len(rows) == 0 {
		return New(0, 0)
	}
	m := New(len(rows), len(rows[0]))
	for i, row := range rows {
		m.SetRow(i, row)
	}

	return m
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.r }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.c }

func (m *Matrix) offset(i, j int) int {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		panic(fmt.Errorf("Matrix(%d,%d) of %dx%d: %w", i, j, m.r, m.c, ErrOutOfRange))
	}

	return i*m.c + j
}

// At returns entry (i, j).
func (m *Matrix) At(i, j int) interval.Interval { return m.data[m.offset(i, j)] }

// Set stores entry (i, j).
func (m *Matrix) Set(i, j int, v interval.Interval) { m.data[m.offset(i, j)] = v }

// Row returns a copy of row i.
func (m *Matrix) Row(i int) vector.Vector {
	m.offset(i, 0)
	return append(vector.Vector(nil), m.data[i*m.c:(i+1)*m.c]...)
}

// Col returns a copy of column j.
func (m *Matrix) Col(j int) vector.Vector {
	out := make(vector.Vector, m.r)
	for i := range out {
		out[i] = m.At(i, j)
	}

	return out
}

// SetRow overwrites row i.
func (m *Matrix) SetRow(i int, v vector.Vector) {
	mustShape("SetRow", 1, m.c, 1, len(v))
	copy(m.data[m.offset(i, 0):], v)
}

// SetCol overwrites column j.
func (m *Matrix) SetCol(j int, v vector.Vector) {
	mustShape("SetCol", m.r, 1, len(v), 1)
	for i := range v {
		m.Set(i, j, v[i])
	}
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{r: m.r, c: m.c, data: append([]interval.Interval(nil), m.data...)}
}

// IsEmpty reports whether some entry is empty.
func (m *Matrix) IsEmpty() bool {
	for _, v := range m.data {
		if v.IsEmpty() {
			return true
		}
	}

	return false
}

// SetEmpty marks every entry empty.
func (m *Matrix) SetEmpty() {
	for i := range m.data {
		m.data[i] = interval.EmptySet
	}
}

func (m *Matrix) normalize() *Matrix {
	if m.IsEmpty() {
		m.SetEmpty()
	}

	return m
}

func (m *Matrix) zip(op string, b *Matrix, f func(x, y interval.Interval) interval.Interval) *Matrix {
	mustShape(op, m.r, m.c, b.r, b.c)
	out := New(m.r, m.c)
	for i := range m.data {
		out.data[i] = f(m.data[i], b.data[i])
	}

	return out.normalize()
}

// Add returns m + b.
func (m *Matrix) Add(b *Matrix) *Matrix { return m.zip("Add", b, interval.Interval.Add) }

// Sub returns m - b.
func (m *Matrix) Sub(b *Matrix) *Matrix { return m.zip("Sub", b, interval.Interval.Sub) }

// Hull returns the entry-wise hull.
func (m *Matrix) Hull(b *Matrix) *Matrix {
	if m.IsEmpty() {
		mustShape("Hull", m.r, m.c, b.r, b.c)
		return b.Clone()
	}
	if b.IsEmpty() {
		mustShape("Hull", m.r, m.c, b.r, b.c)
		return m.Clone()
	}

	return m.zip("Hull", b, interval.Interval.Hull)
}

// Inter returns the entry-wise intersection.
func (m *Matrix) Inter(b *Matrix) *Matrix { return m.zip("Inter", b, interval.Interval.Inter) }

// IsSubset reports whether every entry of m lies in the matching entry of b.
func (m *Matrix) IsSubset(b *Matrix) bool {
	mustShape("IsSubset", m.r, m.c, b.r, b.c)
	if m.IsEmpty() {
		return true
	}
	for i := range m.data {
		if !m.data[i].IsSubset(b.data[i]) {
			return false
		}
	}

	return true
}

// Scale returns k·m.
func (m *Matrix) Scale(k interval.Interval) *Matrix {
	out := New(m.r, m.c)
	for i := range m.data {
		out.data[i] = k.Mul(m.data[i])
	}

	return out.normalize()
}

// Transpose returns mᵀ.
func (m *Matrix) Transpose() *Matrix {
	t := New(m.c, m.r)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			t.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return t
}

// MulVec returns an enclosure of m·x.
func (m *Matrix) MulVec(x vector.Vector) vector.Vector {
	mustShape("MulVec", m.c, 1, len(x), 1)
	out := make(vector.Vector, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = vector.Vector(m.data[i*m.c : (i+1)*m.c]).Dot(x)
	}
	if out.IsEmpty() {
		out.SetEmpty()
	}

	return out
}

// Mul returns an enclosure of m×b.
func (m *Matrix) Mul(b *Matrix) *Matrix {
	mustShape("Mul", m.c, 1, b.r, 1)
	out := New(m.r, b.c)
	for i := 0; i < m.r; i++ {
		for j := 0; j < b.c; j++ {
			s := interval.Zero
			for k := 0; k < m.c; k++ {
				s = s.Add(m.data[i*m.c+k].Mul(b.data[k*b.c+j]))
			}
			out.data[i*b.c+j] = s
		}
	}

	return out.normalize()
}

// MulDense returns an enclosure of c×m for a real matrix c (the
// preconditioning product C·J).
func MulDense(c *Dense, m *Matrix) *Matrix {
	mustShape("MulDense", c.c, 1, m.r, 1)
	out := New(c.r, m.c)
	for i := 0; i < c.r; i++ {
		for j := 0; j < m.c; j++ {
			s := interval.Zero
			for k := 0; k < c.c; k++ {
				s = s.Add(m.data[k*m.c+j].MulScalar(c.at(i, k)))
			}
			out.data[i*m.c+j] = s
		}
	}

	return out.normalize()
}

// MulDenseVec returns an enclosure of c·x for a real matrix c.
func MulDenseVec(c *Dense, x vector.Vector) vector.Vector {
	mustShape("MulDenseVec", c.c, 1, len(x), 1)
	out := make(vector.Vector, c.r)
	for i := 0; i < c.r; i++ {
		out[i] = x.DotPoint(c.data[i*c.c : (i+1)*c.c])
	}
	if out.IsEmpty() {
		out.SetEmpty()
	}

	return out
}

// Mid returns the midpoint matrix. Every midpoint is finite, so the result
// always satisfies the default numeric policy. It panics on an empty matrix.
func (m *Matrix) Mid() *Dense {
	if m.IsEmpty() {
		panic(fmt.Errorf("Matrix.Mid: empty matrix: %w", ErrNaNInf))
	}
	d := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data)), validateNaNInf: DefaultValidateNaNInf}
	for i, v := range m.data {
		d.data[i] = v.Mid()
	}

	return d
}

// Rad returns the matrix of radii (entries may be +Inf).
func (m *Matrix) Rad() *Dense {
	d := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	for i, v := range m.data {
		d.data[i] = v.Rad()
	}

	return d
}

// String renders one row per line, entries separated by " ; ".
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString("(")
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(" ; ")
			}
			sb.WriteString(m.data[i*m.c+j].String())
		}
		sb.WriteString(")\n")
	}

	return sb.String()
}
