// SPDX-License-Identifier: MIT

// Package ivlath is a verified interval arithmetic kernel with the
// branch-and-bound machinery built on top of it: contractors, bisectors,
// cell buffers, existence certification and a restartable search engine.
//
// Every interval computed by the kernel is an enclosure: it contains the
// true real result of the operation it stands for. The search engine uses
// that guarantee to prove that boxes hold no solution, hold exactly one, or
// could not be decided at the requested precision.
//
// Packages, bottom-up:
//
//	rounding/   directed rounding primitives and the scoped Control
//	interval/   Interval, elementary functions, backward projections
//	vector/     boxes (interval vectors) and the exact dot product
//	matrix/     real Dense and interval Matrix; ops/ holds LU, inverse
//	            and preconditioned Gauss-Seidel
//	expr/       expression DAG: forward, backward (HC4-revise), gradient
//	system/     variables, constraints, objective, Jacobian
//	lp/         LP backend contract and rigorous post-processing
//	contractor/ HC4, Newton, Krawczyk, linear relaxation, combinators
//	bisector/   largest-first, round-robin and smear heuristics
//	cell/       cells, properties and the Stack/Queue/Heap buffers
//	certify/    inflation, existence proof and sliver elimination
//	search/     Solver, Optimizer and Parallel paving
//	covering/   result sets: text/JSON output and the SQLite run store
//	config/     YAML solver settings mapped onto search options
//	problems/   registry of named benchmark systems
//
// The ivsolve command (cmd/ivsolve) drives all of the above from the shell:
//
//	ivsolve list
//	ivsolve solve circle-line --format json
//	ivsolve optimize six-hump-camel -c solver.yaml
//	ivsolve solve ring --db runs.db && ivsolve runs --db runs.db
//
// Quick start:
//
//	b := system.NewBuilder()
//	x := b.Var("x", -2, 2)
//	y := b.Var("y", -2, 2)
//	b.Eq(expr.Add(expr.Sqr(x), expr.Sqr(y)), 1)
//	b.Eq(expr.Sub(x, y), 0)
//	sys, _ := b.Build()
//
//	s, _ := search.New(sys)
//	rep, _ := s.Solve(ctx, sys.Domain)
//	for _, r := range rep.Filter(search.Solution) {
//		fmt.Println(r.Box)
//	}
package ivlath
