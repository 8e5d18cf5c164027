// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ivlath/covering"
	"github.com/katalvlaran/ivlath/problems"
	"github.com/katalvlaran/ivlath/search"
)

func newSolveCommand(e *env) *cobra.Command {
	var dim int
	cmd := &cobra.Command{
		Use:   "solve <problem>",
		Short: "Solve or pave a problem and print the covering",
		Long: `Solve runs the interval solver on a problem and prints every reported box.

Equation systems yield proved solution boxes plus boundary boxes; paving
problems also report the boxes proved infeasible. With --db the covering is
saved and its run id logged. A run cut short by max_cells, time_limit or
an interrupt prints its partial covering with the unexplored boxes marked
pending.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runSolve(cmd.Context(), cmd.OutOrStdout(), args[0], dim)
		},
	}
	cmd.Flags().IntVarP(&dim, "dim", "n", 0, "problem dimension (0 for the problem default)")

	return cmd
}

func (e *env) runSolve(ctx context.Context, w io.Writer, name string, dim int) error {
	p, sys, err := e.build(name, dim)
	if err != nil {
		return err
	}
	opts, err := e.cfg.SearchOptions(sys, e.logger)
	if err != nil {
		return misuse("configuration does not fit "+p.Name, err)
	}
	if p.Kind == problems.Pave {
		opts = append(opts, search.WithInfeasible())
	}
	m, stop := e.metrics()
	defer stop()
	opts = append(opts, search.WithMetrics(m))

	var rep search.Report
	if e.cfg.Workers > 1 {
		rep, err = search.Parallel(ctx, sys, sys.Domain, e.cfg.Workers, opts...)
	} else {
		var s *search.Solver
		if s, err = search.New(sys, opts...); err == nil {
			rep, err = s.Solve(ctx, sys.Domain)
		}
	}
	if err != nil {
		return misuse("configure search", err)
	}

	cov := covering.FromReport(p.Name, sys.Vars, rep)
	e.logger.Info("solve finished",
		"problem", p.Name,
		"run", cov.RunID,
		"solutions", rep.Stats.Solutions,
		"boundaries", rep.Stats.Boundaries,
		"pending", rep.Stats.Pending,
		"stop", rep.Stats.Stop,
		"elapsed", rep.Stats.Elapsed)
	if len(rep.Degeneracy) > 0 {
		e.logger.Warn("numerical degeneracy during the run", "reports", len(rep.Degeneracy))
	}

	if err := e.save(ctx, cov); err != nil {
		return err
	}

	return e.writeCovering(w, cov)
}

// save stores cov when --db is set.
func (e *env) save(ctx context.Context, cov *covering.Covering) error {
	if e.opts.DB == "" {
		return nil
	}
	st, err := covering.Open(e.opts.DB)
	if err != nil {
		return failure("open database", err)
	}
	defer st.Close()
	if err := st.SaveRun(ctx, cov); err != nil {
		return failure("save run", err)
	}
	e.logger.Info("run saved", "db", e.opts.DB, "run", cov.RunID)

	return nil
}

func (e *env) writeCovering(w io.Writer, cov *covering.Covering) error {
	var err error
	if e.opts.Format == "json" {
		err = cov.WriteJSON(w)
	} else {
		err = cov.WriteText(w)
	}
	if err != nil {
		return failure("write covering", err)
	}

	return nil
}
