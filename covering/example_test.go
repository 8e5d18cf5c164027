package covering_test

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/ivlath/covering"
	"github.com/katalvlaran/ivlath/search"
	"github.com/katalvlaran/ivlath/vector"
)

// ExampleCovering_Volume sums box volumes per status.
func ExampleCovering_Volume() {
	c := covering.New("demo", []string{"x", "y"})
	c.Add(vector.NewFromBounds([][2]float64{{0, 1}, {0, 1}}), search.Solution)
	c.Add(vector.NewFromBounds([][2]float64{{1, 2}, {0, 0.5}}), search.Boundary)
	c.Add(vector.NewFromBounds([][2]float64{{2, 3}, {0, 1}}), search.Boundary)

	fmt.Println(c.Len(), c.Count(search.Boundary), c.Volume(search.Boundary))
	fmt.Println(c.Hull().Volume())
	// Output:
	// 3 2 1.5
	// 3
}

// ExampleCovering_WriteText prints the line format.
func ExampleCovering_WriteText() {
	c := &covering.Covering{
		RunID:   uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057"),
		Problem: "sqrt2",
		Vars:    []string{"x"},
		Created: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	c.Add(vector.NewFromBounds([][2]float64{{-1.5, -1.25}}), search.Solution)
	c.Add(vector.NewFromBounds([][2]float64{{1.25, 1.5}}), search.Solution)
	c.Stats.Cells = 9
	c.Stats.Bisections = 4
	c.Stats.Solutions = 2
	c.Stats.MaxDepth = 3
	c.Stats.Stop = search.Complete

	if err := c.WriteText(os.Stdout); err != nil {
		fmt.Println(err)
	}
	// Output:
	// # ivlath covering v1
	// run 01890a5d-ac96-774b-bcce-b302099a8057
	// problem sqrt2
	// created 2026-01-02T03:04:05Z
	// vars x
	// stats cells=9 bisections=4 solutions=2 boundaries=0 infeasible=0 pending=0 pruned=0 max_depth=3 max_buffer=0 elapsed=0s
	// stop complete
	// S [-1.5, -1.25]
	// S [1.25, 1.5]
}
