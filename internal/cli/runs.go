// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/ivlath/covering"
)

// RunSummary describes a stored run in runs output.
type RunSummary struct {
	ID        string `json:"id"`
	Problem   string `json:"problem"`
	Created   string `json:"created"`
	Boxes     int    `json:"boxes"`
	Solutions int    `json:"solutions"`
	Stop      string `json:"stop"`
}

func newRunsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List the runs saved in --db",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runRuns(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func newShowCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a covering saved in --db",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runShow(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

func (e *env) openStore() (*covering.Store, error) {
	if e.opts.DB == "" {
		return nil, misuse("--db is required", nil)
	}
	st, err := covering.Open(e.opts.DB)
	if err != nil {
		return nil, failure("open database", err)
	}

	return st, nil
}

func (e *env) runRuns(ctx context.Context, w io.Writer) error {
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx)
	if err != nil {
		return failure("list runs", err)
	}
	out := make([]RunSummary, 0, len(runs))
	for _, r := range runs {
		out = append(out, RunSummary{
			ID:        r.ID.String(),
			Problem:   r.Problem,
			Created:   r.Created.Format(time.RFC3339),
			Boxes:     r.Boxes,
			Solutions: r.Stats.Solutions,
			Stop:      r.Stats.Stop.String(),
		})
	}
	if e.opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return failure("write runs", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROBLEM\tCREATED\tBOXES\tSOLUTIONS\tSTOP")
	for _, r := range out {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", r.ID, r.Problem, r.Created, r.Boxes, r.Solutions, r.Stop)
	}
	if err := tw.Flush(); err != nil {
		return failure("write runs", err)
	}

	return nil
}

func (e *env) runShow(ctx context.Context, w io.Writer, arg string) error {
	id, err := uuid.Parse(arg)
	if err != nil {
		return misuse(fmt.Sprintf("run id %q", arg), err)
	}
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	cov, err := st.LoadRun(ctx, id)
	if errors.Is(err, covering.ErrNotFound) {
		return misuse("no such run", err)
	}
	if err != nil {
		return failure("load run", err)
	}

	return e.writeCovering(w, cov)
}
