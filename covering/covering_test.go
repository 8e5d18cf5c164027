package covering_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/covering"
	"github.com/katalvlaran/ivlath/expr"
	"github.com/katalvlaran/ivlath/search"
	"github.com/katalvlaran/ivlath/system"
	"github.com/katalvlaran/ivlath/vector"
)

func fixture() *covering.Covering {
	c := &covering.Covering{
		RunID:   uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057"),
		Problem: "disk",
		Vars:    []string{"x", "y"},
		Created: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Stats: search.Stats{
			Cells:      7,
			Bisections: 3,
			Solutions:  1,
			Boundaries: 2,
			Infeasible: 1,
			Pending:    1,
			MaxDepth:   2,
			MaxBuffer:  3,
			Elapsed:    1500 * time.Microsecond,
			Stop:       search.CellLimit,
		},
	}
	c.Add(vector.NewFromBounds([][2]float64{{0, 0.5}, {-0.5, 0.5}}), search.Solution)
	c.Add(vector.NewFromBounds([][2]float64{{0.5, 1}, {-1, 0}}), search.Boundary)
	c.Add(vector.NewFromBounds([][2]float64{{0.5, 1}, {0, 1}}), search.Boundary)
	c.Add(vector.NewFromBounds([][2]float64{{-1, -0.5}, {0.75, 1}}), search.Infeasible)
	c.Add(vector.NewFromBounds([][2]float64{{-0.1, 1e-300}, {math.Inf(-1), math.Inf(1)}}), search.Pending)

	return c
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
}

func requireSame(t *testing.T, want, got *covering.Covering) {
	t.Helper()
	require.Equal(t, want.RunID, got.RunID)
	require.Equal(t, want.Problem, got.Problem)
	require.Equal(t, want.Vars, got.Vars)
	require.True(t, want.Created.Equal(got.Created), "created %v vs %v", want.Created, got.Created)
	require.Equal(t, want.Stats, got.Stats)
	require.Len(t, got.Entries, len(want.Entries))
	for i := range want.Entries {
		require.Equal(t, want.Entries[i].Status, got.Entries[i].Status, "entry %d", i)
		require.True(t, want.Entries[i].Box.Equal(got.Entries[i].Box), "entry %d: %v vs %v", i, want.Entries[i].Box, got.Entries[i].Box)
	}
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	c := fixture()
	assert.Equal(t, 5, c.Len())
	assert.Equal(t, 2, c.Count(search.Boundary))
	assert.Len(t, c.Filter(search.Boundary), 2)
	assert.Empty(t, c.Filter(search.Status(9)))
	assert.InDelta(t, 0.5, c.Volume(search.Solution), 1e-15)
	assert.InDelta(t, 1.0, c.Volume(search.Boundary), 1e-15)
	assert.True(t, math.IsInf(c.Volume(search.Pending), 1))

	h := c.Hull()
	assert.Equal(t, -1.0, h[0].LB())
	assert.Equal(t, 1.0, h[0].UB())
	assert.True(t, h[1].IsUnbounded())

	assert.True(t, covering.New("none", []string{"x"}).Hull().IsEmpty())
	assert.Panics(t, func() { c.Add(vector.New(3), search.Solution) })
}

func TestNewHasTimeOrderedIDs(t *testing.T) {
	t.Parallel()

	a := covering.New("p", []string{"x"})
	b := covering.New("p", []string{"x"})
	assert.Equal(t, uuid.Version(7), a.RunID.Version())
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.LessOrEqual(t, a.RunID.String(), b.RunID.String())
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"S", "solution"} {
		st, err := covering.ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, search.Solution, st)
	}
	st, err := covering.ParseStatus("P")
	require.NoError(t, err)
	assert.Equal(t, search.Pending, st)
	_, err = covering.ParseStatus("X")
	require.ErrorIs(t, err, covering.ErrFormat)
}

func TestWriteTextGolden(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, fixture().WriteText(&buf))
	golden(t).Assert(t, "covering_text", buf.Bytes())
}

func TestWriteJSONGolden(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, fixture().WriteJSON(&buf))
	golden(t).Assert(t, "covering_json", buf.Bytes())
}

func TestReadTextGolden(t *testing.T) {
	t.Parallel()

	f, err := os.Open(filepath.Join("testdata", "golden", "covering_text.golden"))
	require.NoError(t, err)
	defer f.Close()

	got, err := covering.ReadText(f)
	require.NoError(t, err)
	requireSame(t, fixture(), got)
}

func TestReadTextRejects(t *testing.T) {
	t.Parallel()

	head := "# ivlath covering v1\nvars x y\n"
	cases := map[string]string{
		"empty":      "",
		"header":     "covering\n",
		"record":     head + "Q [0, 1] [0, 1]\n",
		"components": head + "S [0, 1]\n",
		"bound":      head + "S [0, one] [0, 1]\n",
		"reversed":   head + "S [1, 0] [0, 1]\n",
		"unclosed":   head + "S [0, 1] [0, 1\n",
		"stats":      head + "stats cells=x\n",
		"stop":       head + "stop sideways\n",
		"run":        head + "run 42\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := covering.ReadText(bytes.NewBufferString(in))
			require.ErrorIs(t, err, covering.ErrFormat)
		})
	}
}

func TestFromReport(t *testing.T) {
	t.Parallel()

	b := system.NewBuilder()
	x := b.Var("x", -1, 1)
	y := b.Var("y", -1, 1)
	b.Leq(expr.Add(expr.Sqr(x), expr.Sqr(y)), 1)
	sys, err := b.Build()
	require.NoError(t, err)

	s, err := search.New(sys,
		search.WithLogger(slog.New(slog.DiscardHandler)),
		search.WithPrec(0.2),
		search.WithInfeasible())
	require.NoError(t, err)
	rep, err := s.Solve(context.Background(), sys.Domain)
	require.NoError(t, err)

	c := covering.FromReport("disk", sys.Vars, rep)
	require.Equal(t, len(rep.Results), c.Len())
	require.Equal(t, rep.Stats, c.Stats)
	require.Equal(t, rep.Stats.Solutions, c.Count(search.Solution))
	total := c.Volume(search.Solution) + c.Volume(search.Boundary) + c.Volume(search.Infeasible)
	assert.InDelta(t, 4.0, total, 1e-9)
	assert.True(t, c.Hull().IsSubset(sys.Domain))

	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))
	back, err := covering.ReadText(&buf)
	require.NoError(t, err)
	requireSame(t, c, back)
}
