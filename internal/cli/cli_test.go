package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ivlath/covering"
	"github.com/katalvlaran/ivlath/problems"
	"github.com/katalvlaran/ivlath/search"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ivsolve.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ivsolve", cmd.Use)
	assert.Contains(t, cmd.Long, "branch-and-bound")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"list", "solve", "optimize", "runs", "show"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	for _, name := range []string{"config", "db", "workers", "metrics-addr"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	solve, _, err := cmd.Find([]string{"solve"})
	require.NoError(t, err)
	dim := solve.Flags().Lookup("dim")
	require.NotNil(t, dim)
	assert.Equal(t, "n", dim.Shorthand)
}

func TestList(t *testing.T) {
	out, _, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "circle-line")
	assert.Contains(t, out, "6 (2..64)")

	out, _, err = execute(t, "list", "--format", "json")
	require.NoError(t, err)
	var infos []ProblemInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	assert.Len(t, infos, len(problems.Default().Names()))
}

func TestSolveText(t *testing.T) {
	out, logs, err := execute(t, "solve", "sqrt2")
	require.NoError(t, err)
	assert.Contains(t, logs, "solve finished")

	cov, err := covering.ReadText(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "sqrt2", cov.Problem)
	assert.Equal(t, []string{"x"}, cov.Vars)
	assert.Equal(t, 2, cov.Count(search.Solution))
	assert.Equal(t, search.Complete, cov.Stats.Stop)
}

func TestSolveJSONParallel(t *testing.T) {
	out, _, err := execute(t, "solve", "circle-line", "--format", "json", "--workers", "2")
	require.NoError(t, err)

	var doc struct {
		Problem string `json:"problem"`
		Boxes   []struct {
			Status string `json:"status"`
		} `json:"boxes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "circle-line", doc.Problem)
	solutions := 0
	for _, b := range doc.Boxes {
		if b.Status == "solution" {
			solutions++
		}
	}
	assert.Equal(t, 2, solutions)
}

func TestSolvePavesWithInfeasible(t *testing.T) {
	cfg := writeConfig(t, "prec: 0.25\n")
	out, _, err := execute(t, "solve", "unit-disk", "--config", cfg)
	require.NoError(t, err)

	cov, err := covering.ReadText(strings.NewReader(out))
	require.NoError(t, err)
	assert.NotZero(t, cov.Count(search.Infeasible))
	assert.NotZero(t, cov.Count(search.Solution))
	total := cov.Volume(search.Solution) + cov.Volume(search.Boundary) + cov.Volume(search.Infeasible)
	assert.InDelta(t, 4.0, total, 1e-9)
}

func TestSolveBudgetPrintsPending(t *testing.T) {
	cfg := writeConfig(t, "prec: 0.01\nmax_cells: 3\n")
	out, _, err := execute(t, "solve", "unit-disk", "--config", cfg)
	require.NoError(t, err, "a budget stop is not an error")
	assert.Contains(t, out, "stop cell limit")
	assert.Contains(t, out, "\nP [")
}

func TestSaveRunsShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	solved, _, err := execute(t, "solve", "sqrt2", "--db", db)
	require.NoError(t, err)

	out, _, err := execute(t, "runs", "--db", db, "--format", "json")
	require.NoError(t, err)
	var runs []RunSummary
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "sqrt2", runs[0].Problem)
	assert.Equal(t, 2, runs[0].Solutions)

	out, _, err = execute(t, "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, runs[0].ID)

	shown, _, err := execute(t, "show", runs[0].ID, "--db", db)
	require.NoError(t, err)
	assert.Equal(t, solved, shown)
}

func TestOptimize(t *testing.T) {
	out, _, err := execute(t, "optimize", "booth", "--format", "json")
	require.NoError(t, err)
	var res OptimizeResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "optimal", res.Status)
	require.NotNil(t, res.Loup)
	require.NotNil(t, res.Uplo)
	assert.LessOrEqual(t, *res.Uplo, 0.0)
	assert.InDelta(t, 0, *res.Loup, 1e-6)
	require.Len(t, res.Point, 2)
	assert.InDelta(t, 1, res.Point[0], 1e-2)
	assert.InDelta(t, 3, res.Point[1], 1e-2)

	out, _, err = execute(t, "optimize", "booth")
	require.NoError(t, err)
	assert.Contains(t, out, "status optimal\n")
	assert.Contains(t, out, "stop complete\n")
}

func TestMisuse(t *testing.T) {
	bad := writeConfig(t, "workers: 0\n")
	db := filepath.Join(t.TempDir(), "runs.db")
	cases := map[string][]string{
		"unknown problem":  {"solve", "nope"},
		"format":           {"list", "--format", "xml"},
		"no objective":     {"optimize", "unit-disk"},
		"runs without db":  {"runs"},
		"bad run id":       {"show", "42", "--db", db},
		"missing run":      {"show", uuid.NewString(), "--db", db},
		"missing argument": {"solve"},
		"bad config":       {"solve", "sqrt2", "--config", bad},
		"missing config":   {"solve", "sqrt2", "--config", filepath.Join(t.TempDir(), "none.yaml")},
		"dimension":        {"solve", "broyden-banded", "-n", "1"},
		"workers":          {"solve", "sqrt2", "--workers", "0"},
		"newton on disk":   {"solve", "unit-disk", "--config", writeConfig(t, "contractor: [newton]\n")},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, ExitMisuse, GetExitCode(err), "%v", err)
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitMisuse, GetExitCode(errors.New("unknown flag")))
	err := failure("save run", errors.New("disk full"))
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "save run: disk full", err.Error())
	assert.Equal(t, "--db is required", misuse("--db is required", nil).Error())
}
