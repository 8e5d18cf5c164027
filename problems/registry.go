// SPDX-License-Identifier: MIT

package problems

import (
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/ivlath/system"
)

// Kind tells how a problem is meant to be run.
type Kind int

const (
	// Solve asks for every solution of a square equation system.
	Solve Kind = iota
	// Pave asks for a covering of a set defined by inequalities.
	Pave
	// Minimize asks for the global minimum of the objective.
	Minimize
)

var kindNames = [...]string{"solve", "pave", "minimize"}

// String returns the kind in words.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// Factory builds the system of dimension n.
type Factory func(n int) (*system.System, error)

// Problem is a registry entry.
type Problem struct {
	Name    string
	Summary string
	Kind    Kind

	// MinN, MaxN and DefaultN bound the dimension; fixed-size problems
	// have all three equal.
	MinN, MaxN, DefaultN int

	// Solutions lists known solutions of a Solve problem of DefaultN
	// variables (nil when not tabulated).
	Solutions [][]float64

	// Minimum is the global minimum of a Minimize problem.
	Minimum float64

	Build Factory
}

// System builds the problem; n ≤ 0 selects DefaultN.
func (p Problem) System(n int) (*system.System, error) {
	if n <= 0 {
		n = p.DefaultN
	}
	if n < p.MinN || n > p.MaxN {
		return nil, fmt.Errorf("problems.%s(n=%d): want %d..%d: %w", p.Name, n, p.MinN, p.MaxN, ErrSize)
	}
	sys, err := p.Build(n)
	if err != nil {
		return nil, fmt.Errorf("problems.%s(n=%d): %w", p.Name, n, err)
	}

	return sys, nil
}

// Registry maps names to problems. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Problem
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{byName: make(map[string]Problem)} }

// Register adds p.
func (r *Registry) Register(p Problem) error {
	if p.Name == "" || p.Build == nil {
		return fmt.Errorf("problems.Register(%q): name and factory are required: %w", p.Name, ErrUnknown)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[p.Name]; ok {
		return fmt.Errorf("problems.Register(%q): %w", p.Name, ErrDuplicate)
	}
	r.byName[p.Name] = p

	return nil
}

// Get returns the problem called name.
func (r *Registry) Get(name string) (Problem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[name]
	if !ok {
		return Problem{}, fmt.Errorf("problems.Get(%q): %w", name, ErrUnknown)
	}

	return p, nil
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// All returns the problems of kind k (every problem when k < 0) by name.
func (r *Registry) All(k Kind) []Problem {
	var out []Problem
	for _, name := range r.Names() {
		p, _ := r.Get(name)
		if k < 0 || p.Kind == k {
			out = append(out, p)
		}
	}

	return out
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry holding the built-in problems.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
		for _, p := range builtins() {
			if err := defaultReg.Register(p); err != nil {
				panic(err)
			}
		}
	})

	return defaultReg
}

// noDim adapts a dimension-free constructor.
func noDim(build func() (*system.System, error)) Factory {
	return func(int) (*system.System, error) { return build() }
}
