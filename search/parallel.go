// SPDX-License-Identifier: MIT

package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ivlath/system"
	"github.com/katalvlaran/ivlath/vector"
)

// Parallel paves box ∩ domain with workers independent solvers. The box is
// cut into workers slices by repeatedly halving the widest slice along its
// widest variable; every slice is searched by a Solver with its own
// contractors, certifier, buffer and rounding control. Results keep slice
// order. Budgets apply per worker.
//
// Errors:
//   - ErrWorkers when workers < 1.
//   - every error of New and Start.
func Parallel(ctx context.Context, sys *system.System, box vector.Vector, workers int, opts ...Option) (Report, error) {
	if workers < 1 {
		return Report{}, fmt.Errorf("search.Parallel: %d workers: %w", workers, ErrWorkers)
	}
	proto, err := New(sys, opts...)
	if err != nil {
		return Report{}, fmt.Errorf("search.Parallel: %w", err)
	}
	if len(box) != sys.N() {
		return Report{}, fmt.Errorf("search.Parallel: %d components for %d variables: %w", len(box), sys.N(), ErrDimension)
	}

	ctx, span := proto.opts.tracer.Start(ctx, "search.Parallel",
		trace.WithAttributes(attribute.Int("search.workers", workers)))
	defer span.End()

	began := time.Now()
	proto.opts.esc.Reset()
	slices := Slices(box.Inter(sys.Domain), workers)
	reports := make([]Report, len(slices))

	g, gctx := errgroup.WithContext(ctx)
	for i, slice := range slices {
		w := proto.fork()
		g.Go(func() error {
			wctx, wspan := w.opts.tracer.Start(gctx, "search.Parallel.worker",
				trace.WithAttributes(attribute.Int("search.worker", i)))
			defer wspan.End()

			if err := w.Start(slice); err != nil {
				wspan.RecordError(err)
				wspan.SetStatus(codes.Error, err.Error())
				return fmt.Errorf("search.Parallel: worker %d: %w", i, err)
			}
			reports[i] = w.collect(wctx, wspan)
			w.opts.logger.Debug("worker done", slog.Int("worker", i), slog.Int("cells", reports[i].Stats.Cells))

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}

	var rep Report
	for _, r := range reports {
		rep.Results = append(rep.Results, r.Results...)
		rep.Stats.add(r.Stats)
	}
	if rep.Stats.Stop == Running {
		rep.Stats.Stop = Complete
	}
	rep.Stats.Elapsed = time.Since(began)
	rep.Degeneracy = proto.opts.esc.Diagnostics()
	span.SetAttributes(
		attribute.Int("search.cells", rep.Stats.Cells),
		attribute.Int("search.solutions", rep.Stats.Solutions),
		attribute.String("search.stop", rep.Stats.Stop.String()),
	)
	span.SetStatus(codes.Ok, "")

	return rep, nil
}

// Slices cuts box into at most k boxes covering it, halving the widest
// slice along its widest variable until there are k of them or no slice
// can be split. An empty box yields no slice.
func Slices(box vector.Vector, k int) []vector.Vector {
	if box.IsEmpty() {
		return nil
	}
	out := []vector.Vector{box.Clone()}
	for len(out) < k {
		widest, width := -1, 0.0
		for j, b := range out {
			i := b.ExtrDiamIndex(false)
			if b[i].IsBisectable() && b[i].Diam() > width {
				widest, width = j, b[i].Diam()
			}
		}
		if widest < 0 {
			break
		}
		b := out[widest]
		l, r := b.Bisect(b.ExtrDiamIndex(false), 0.5)
		out[widest] = l
		out = append(out, r)
	}

	return out
}
