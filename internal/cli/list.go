// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ProblemInfo describes a registry entry in list output.
type ProblemInfo struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	MinN     int    `json:"min_n"`
	MaxN     int    `json:"max_n"`
	DefaultN int    `json:"default_n"`
	Summary  string `json:"summary"`
}

func newListCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runList(cmd.OutOrStdout())
		},
	}
}

func (e *env) runList(w io.Writer) error {
	var infos []ProblemInfo
	for _, p := range e.reg.All(-1) {
		infos = append(infos, ProblemInfo{
			Name:     p.Name,
			Kind:     p.Kind.String(),
			MinN:     p.MinN,
			MaxN:     p.MaxN,
			DefaultN: p.DefaultN,
			Summary:  p.Summary,
		})
	}
	if e.opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return failure("write list", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tDIM\tSUMMARY")
	for _, p := range infos {
		dim := fmt.Sprint(p.DefaultN)
		if p.MinN != p.MaxN {
			dim = fmt.Sprintf("%d (%d..%d)", p.DefaultN, p.MinN, p.MaxN)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Kind, dim, p.Summary)
	}
	if err := tw.Flush(); err != nil {
		return failure("write list", err)
	}

	return nil
}
