package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/certify"
	"github.com/katalvlaran/ivlath/contractor"
	"github.com/katalvlaran/ivlath/search"
	"github.com/katalvlaran/ivlath/vector"
)

func TestSlices(t *testing.T) {
	t.Parallel()

	box := vector.NewFromBounds([][2]float64{{0, 4}, {0, 1}})
	got := search.Slices(box, 3)
	require.Len(t, got, 3)
	hull := vector.Empty(2)
	total := 0.0
	for _, s := range got {
		require.True(t, s.IsSubset(box))
		hull = hull.Hull(s)
		total += s.Volume()
	}
	require.True(t, hull.Equal(box))
	assert.InDelta(t, 4.0, total, 1e-12)

	require.Len(t, search.Slices(vector.FromPoint([]float64{1, 2}), 4), 1, "a point cannot be split")
	require.Empty(t, search.Slices(vector.Empty(2), 4))
}

func TestParallelCertifiesCircleLine(t *testing.T) {
	t.Parallel()

	sys := circleLine(t)
	rep, err := search.Parallel(context.Background(), sys, sys.Domain, 4, quiet())
	require.NoError(t, err)
	require.True(t, rep.Complete())

	sols := rep.Filter(search.Solution)
	require.Len(t, sols, 2)
	for _, r := range sols {
		require.Equal(t, certify.Proved, r.Proof)
	}
	require.Equal(t, 2, rep.Stats.Solutions)
	require.Positive(t, rep.Stats.Cells)
}

func TestParallelPavesDisk(t *testing.T) {
	t.Parallel()

	sys := disk(t)
	rep, err := search.Parallel(context.Background(), sys, sys.Domain, 3, quiet(),
		search.WithContractor(contractor.NewHC4(sys)),
		search.WithPrec(0.1),
		search.WithInfeasible())
	require.NoError(t, err)
	require.True(t, rep.Complete())
	assert.InDelta(t, 4.0, volume(rep.Results), 1e-9)
}

func TestParallelBudgetsPerWorker(t *testing.T) {
	t.Parallel()

	sys := disk(t)
	rep, err := search.Parallel(context.Background(), sys, sys.Domain, 2, quiet(),
		search.WithPrec(0.01),
		search.WithMaxCells(5))
	require.NoError(t, err)
	require.Equal(t, search.CellLimit, rep.Stats.Stop)
	require.Equal(t, 10, rep.Stats.Cells)
	require.NotEmpty(t, rep.Filter(search.Pending))
}

func TestParallelMisuse(t *testing.T) {
	t.Parallel()

	sys := disk(t)
	_, err := search.Parallel(context.Background(), sys, sys.Domain, 0)
	require.ErrorIs(t, err, search.ErrWorkers)
	_, err = search.Parallel(context.Background(), sys, vector.New(5), 2, quiet())
	require.ErrorIs(t, err, search.ErrDimension)
}
