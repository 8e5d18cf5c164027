// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ivlath/search"
)

// OptimizeResult is the printed outcome of an optimize run. Infinite
// bounds are null in JSON.
type OptimizeResult struct {
	Problem   string    `json:"problem"`
	Status    string    `json:"status"`
	Loup      *float64  `json:"loup"`
	Uplo      *float64  `json:"uplo"`
	Point     []float64 `json:"point,omitempty"`
	Cells     int       `json:"cells"`
	Pending   int       `json:"pending"`
	Stop      string    `json:"stop"`
	ElapsedMS int64     `json:"elapsed_ms"`
}

func newOptimizeCommand(e *env) *cobra.Command {
	var dim int
	cmd := &cobra.Command{
		Use:   "optimize <problem>",
		Short: "Minimize a problem's objective",
		Long: `Optimize runs the interval branch-and-bound optimizer on a problem with an
objective. It prints the status, the best feasible value found (loup), a
certified lower bound on the minimum (uplo) and the point achieving loup.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runOptimize(cmd.Context(), cmd.OutOrStdout(), args[0], dim)
		},
	}
	cmd.Flags().IntVarP(&dim, "dim", "n", 0, "problem dimension (0 for the problem default)")

	return cmd
}

func (e *env) runOptimize(ctx context.Context, w io.Writer, name string, dim int) error {
	p, sys, err := e.build(name, dim)
	if err != nil {
		return err
	}
	if sys.Goal == nil {
		return misuse(fmt.Sprintf("problem %s has no objective (use solve)", p.Name), search.ErrNoGoal)
	}
	opts, err := e.cfg.SearchOptions(sys, e.logger)
	if err != nil {
		return misuse("configuration does not fit "+p.Name, err)
	}
	m, stop := e.metrics()
	defer stop()
	opts = append(opts, search.WithMetrics(m))

	o, err := search.NewOptimizer(sys, opts...)
	if err != nil {
		return misuse("configure optimizer", err)
	}
	rep, err := o.Minimize(ctx, sys.Domain)
	if err != nil {
		return misuse("minimize", err)
	}

	res := OptimizeResult{
		Problem:   p.Name,
		Status:    rep.Status.String(),
		Loup:      finite(rep.Loup),
		Uplo:      finite(rep.Uplo),
		Point:     rep.Point,
		Cells:     rep.Stats.Cells,
		Pending:   rep.Stats.Pending,
		Stop:      rep.Stats.Stop.String(),
		ElapsedMS: rep.Stats.Elapsed.Milliseconds(),
	}
	if e.opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return failure("write result", err)
		}
		return nil
	}
	if err := writeOptimizeText(w, res, rep); err != nil {
		return failure("write result", err)
	}

	return nil
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func writeOptimizeText(w io.Writer, res OptimizeResult, rep search.OptReport) error {
	pt := make([]string, len(res.Point))
	for i, v := range res.Point {
		pt[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	_, err := fmt.Fprintf(w, "problem %s\nstatus %s\nloup %g\nuplo %g\npoint %s\ncells %d\npending %d\nstop %s\n",
		res.Problem, res.Status, rep.Loup, rep.Uplo, strings.Join(pt, " "), res.Cells, res.Pending, res.Stop)

	return err
}
