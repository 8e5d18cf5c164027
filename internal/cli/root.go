// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ivlath/config"
	"github.com/katalvlaran/ivlath/problems"
	"github.com/katalvlaran/ivlath/system"
)

// RootOptions holds the global flags.
type RootOptions struct {
	Verbose     bool
	Format      string // "text" | "json"
	Config      string
	DB          string
	Workers     int
	MetricsAddr string
}

// ValidFormats lists the accepted --format values.
var ValidFormats = []string{"text", "json"}

// env is what every command runs with once the global flags are resolved.
type env struct {
	opts   *RootOptions
	cfg    config.Config
	logger *slog.Logger
	reg    *problems.Registry
}

// NewRootCommand returns the ivsolve command tree over the built-in
// problems.
func NewRootCommand() *cobra.Command { return newRootCommand(problems.Default()) }

func newRootCommand(reg *problems.Registry) *cobra.Command {
	opts := &RootOptions{}
	e := &env{opts: opts, reg: reg}

	cmd := &cobra.Command{
		Use:   "ivsolve",
		Short: "Verified interval solver",
		Long: `ivsolve runs branch-and-bound interval search on the built-in problems.

Solutions are enclosed in boxes proved to contain exactly one solution;
the other boxes are reported as boundary, infeasible or pending. Runs can
be saved to a SQLite database and shown again later.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.resolve(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "YAML solver settings")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "SQLite database for saved runs")
	cmd.PersistentFlags().IntVarP(&opts.Workers, "workers", "w", 0, "parallel paving workers (overrides the config)")
	cmd.PersistentFlags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during a run")

	cmd.AddCommand(newListCommand(e))
	cmd.AddCommand(newSolveCommand(e))
	cmd.AddCommand(newOptimizeCommand(e))
	cmd.AddCommand(newRunsCommand(e))
	cmd.AddCommand(newShowCommand(e))

	return cmd
}

// resolve validates the global flags, loads the configuration and installs
// the logger.
func (e *env) resolve(cmd *cobra.Command) error {
	if !slices.Contains(ValidFormats, e.opts.Format) {
		return misuse(fmt.Sprintf("invalid format %q: must be one of %v", e.opts.Format, ValidFormats), nil)
	}

	cfg := config.Default()
	if e.opts.Config != "" {
		var err error
		if cfg, err = config.Load(e.opts.Config); err != nil {
			return misuse("load config", err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return misuse("environment", err)
	}
	if cmd.Flags().Changed("workers") {
		if e.opts.Workers < 1 {
			return misuse(fmt.Sprintf("--workers %d: must be >= 1", e.opts.Workers), nil)
		}
		cfg.Workers = e.opts.Workers
	}
	e.cfg = cfg

	level := cfg.Level()
	if e.opts.Verbose {
		level = slog.LevelDebug
	}
	e.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return nil
}

// build looks up name and builds its system of dimension n (0 for the
// problem's default).
func (e *env) build(name string, n int) (problems.Problem, *system.System, error) {
	p, err := e.reg.Get(name)
	if err != nil {
		return problems.Problem{}, nil, misuse("unknown problem (see ivsolve list)", err)
	}
	sys, err := p.System(n)
	if err != nil {
		return problems.Problem{}, nil, misuse("build problem", err)
	}

	return p, sys, nil
}
