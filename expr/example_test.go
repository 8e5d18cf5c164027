package expr_test

import (
	"fmt"

	"github.com/katalvlaran/ivlath/expr"
	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/vector"
)

// ExampleFunc_Backward narrows a box to the points where x + y = 3.
func ExampleFunc_Backward() {
	f := expr.MustCompile(expr.Add(expr.X(0), expr.X(1)))
	box := vector.NewFromBounds([][2]float64{{0, 10}, {1, 2}})
	ok := f.Backward(box, interval.Point(3))
	fmt.Println(ok, box)
	// Output: true ([1, 2] ; [1, 2])
}

// ExampleFunc_Gradient encloses the gradient of x·y over a box.
func ExampleFunc_Gradient() {
	f := expr.MustCompile(expr.Mul(expr.X(0), expr.X(1)))
	fmt.Println(f, f.Gradient(vector.NewFromBounds([][2]float64{{1, 2}, {3, 4}})))
	// Output: (x0*x1) ([3, 4] ; [1, 2])
}
