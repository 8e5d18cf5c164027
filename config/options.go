// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/ivlath/bisector"
	"github.com/katalvlaran/ivlath/cell"
	"github.com/katalvlaran/ivlath/contractor"
	"github.com/katalvlaran/ivlath/search"
	"github.com/katalvlaran/ivlath/system"
)

// SearchOptions maps c onto search options for sys. The contractors it
// builds and the engine share one escalation logging to logger.
//
// Errors:
//   - contractor.ErrNotSquare when newton or krawczyk is named for a system
//     whose equalities are not as many as its variables.
func (c Config) SearchOptions(sys *system.System, logger *slog.Logger) ([]search.Option, error) {
	if logger == nil {
		logger = slog.Default()
	}
	esc := contractor.NewEscalation(logger)
	opts := []search.Option{
		search.WithLogger(logger),
		search.WithEscalation(esc),
		search.WithPrec(c.Prec),
		search.WithMaxCells(c.MaxCells),
		search.WithTimeLimit(c.TimeLimit),
		search.WithRelPrec(c.Optimizer.RelPrec),
		search.WithAbsPrec(c.Optimizer.AbsPrec),
		search.WithSamples(c.Optimizer.Samples),
		search.WithSeed(c.Optimizer.Seed),
	}
	if c.Infeasible {
		opts = append(opts, search.WithInfeasible())
	}
	if !c.Certify {
		opts = append(opts, search.WithCertifier(nil))
	}

	copts := []contractor.Option{
		contractor.WithEscalation(esc),
		contractor.WithRatio(c.Ratio),
		contractor.WithMaxIter(c.MaxIter),
	}
	if c.EpsH > 0 {
		copts = append(copts, contractor.WithEpsH(c.EpsH))
	}
	if len(c.Contractor) > 0 {
		ctc, err := c.pipeline(sys, copts)
		if err != nil {
			return nil, err
		}
		opts = append(opts, search.WithContractor(ctc))
	}
	if c.Bisector != "" {
		opts = append(opts, search.WithBisector(c.bisector(sys)))
	}
	if c.Buffer != "" {
		opts = append(opts, search.WithBuffer(c.buffer()))
	}

	return opts, nil
}

// pipeline composes the named contractors and iterates them to a fixpoint.
func (c Config) pipeline(sys *system.System, copts []contractor.Option) (contractor.Contractor, error) {
	parts := make([]contractor.Contractor, 0, len(c.Contractor))
	for _, name := range c.Contractor {
		var (
			ctc contractor.Contractor
			err error
		)
		switch name {
		case "hc4":
			ctc = contractor.NewHC4(sys, copts...)
		case "newton":
			ctc, err = contractor.NewNewton(sys, copts...)
		case "krawczyk":
			ctc, err = contractor.NewKrawczyk(sys, copts...)
		case "identity":
			ctc = contractor.NewIdentity(sys.N())
		default:
			return nil, fmt.Errorf("contractor %q: %w", name, ErrInvalid)
		}
		if err != nil {
			return nil, fmt.Errorf("contractor %q: %w", name, err)
		}
		parts = append(parts, ctc)
	}
	if len(parts) == 1 {
		return contractor.NewFixpoint(parts[0], copts...), nil
	}

	return contractor.NewFixpoint(contractor.NewCompose(parts...), copts...), nil
}

func (c Config) bisector(sys *system.System) bisector.Bisector {
	bopts := []bisector.Option{bisector.WithPrec(c.Prec)}
	switch c.Bisector {
	case "round-robin":
		return bisector.NewRoundRobin(bopts...)
	case "smear-max":
		return bisector.NewSmearMax(sys, bopts...)
	case "smear-sum":
		return bisector.NewSmearSum(sys, bopts...)
	case "smear-relative":
		return bisector.NewSmearMaxRelative(sys, bopts...)
	}

	return bisector.NewLargestFirst(bopts...)
}

func (c Config) buffer() func() cell.Buffer {
	seed := c.Optimizer.Seed
	switch c.Buffer {
	case "queue":
		return func() cell.Buffer { return cell.NewQueue() }
	case "largest-first":
		return func() cell.Buffer { return cell.NewHeap(cell.LargestFirst) }
	case "depth":
		return func() cell.Buffer { return cell.NewHeap(cell.Depth) }
	case "min-lb":
		return func() cell.Buffer { return cell.NewHeap(cell.MinLB) }
	case "double-heap":
		return func() cell.Buffer { return cell.NewDoubleHeap(cell.MinLB, cell.MinUB, 0.5, seed) }
	}

	return func() cell.Buffer { return cell.NewStack() }
}
