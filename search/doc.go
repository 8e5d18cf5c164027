// SPDX-License-Identifier: MIT

// Package search runs interval branch and bound over a system.
//
// A Solver paves a box: it pops a cell from a buffer, contracts it,
// classifies it and either reports it or bisects it and pushes both
// halves. Results come out one at a time through Next (or the All
// iterator), so a caller may stop early and pick up later. When the cell
// budget, the time limit or the context runs out, every live cell is
// reported Pending and Resume continues from where the search stopped.
//
//	s, _ := search.New(sys)
//	rep, _ := s.Solve(ctx, sys.Domain)
//	for _, r := range rep.Filter(search.Solution) {
//		fmt.Println(r.Box, r.Proof)
//	}
//
// An Optimizer minimizes the system's goal. It keeps loup, the smallest
// objective value verified at a feasible point, and uplo, the smallest
// lower bound over the cells still alive; it stops once the gap between
// them is below the requested precision.
//
// Parallel splits the root box into slices and paves each with its own
// Solver (cloned contractors, own buffer) under an errgroup.
//
// Solvers log through log/slog, count through Prometheus collectors built
// by NewMetrics, and open OpenTelemetry spans around Solve, Minimize and
// every Parallel worker.
package search
