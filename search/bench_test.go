package search_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/ivlath/search"
)

func BenchmarkSolveCircleLine(b *testing.B) {
	sys := circleLine(b)
	s, err := search.New(sys, quiet())
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Solve(ctx, sys.Domain); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParallelDisk(b *testing.B) {
	sys := disk(b)
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := search.Parallel(ctx, sys, sys.Domain, 4, quiet(), search.WithPrec(0.01)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMinimizeHimmelblau(b *testing.B) {
	sys := himmelblau(b)
	o, err := search.NewOptimizer(sys, quiet(), search.WithAbsPrec(1e-6))
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := o.Minimize(ctx, sys.Domain); err != nil {
			b.Fatal(err)
		}
	}
}
