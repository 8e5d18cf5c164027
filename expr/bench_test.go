package expr_test

import (
	"testing"

	"github.com/katalvlaran/ivlath/expr"
	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/vector"
)

func benchFunc() *expr.Func {
	x, y := expr.X(0), expr.X(1)
	return expr.MustCompile(expr.Sub(expr.Add(expr.Sqr(x), expr.Mul(x, expr.Sin(y))), expr.Exp(y)))
}

func BenchmarkForward(b *testing.B) {
	f := benchFunc()
	s := f.NewScratch()
	box := vector.NewFromBounds([][2]float64{{-1, 2}, {0, 1}})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		f.Forward(box, s)
	}
}

func BenchmarkBackward(b *testing.B) {
	f := benchFunc()
	s := f.NewScratch()
	root := vector.NewFromBounds([][2]float64{{-1, 2}, {0, 1}})
	box := root.Clone()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		box.CopyFrom(root)
		f.BackwardScratch(box, interval.Zero, s)
	}
}

func BenchmarkGradient(b *testing.B) {
	f := benchFunc()
	box := vector.NewFromBounds([][2]float64{{-1, 2}, {0, 1}})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		f.Gradient(box)
	}
}
