// SPDX-License-Identifier: MIT

package contractor

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Diagnostic summarizes the degeneracy reports of one source.
type Diagnostic struct {
	Source string
	Err    error // most recent
	Count  int
	Level  slog.Level
}

// Escalation collects numerical degeneracy reports. The first report of a
// source is logged at warning level; repeated reports within the same
// computation are logged at error level, which upstream logic may read
// back through Diagnostics to decide whether to keep going. Reset starts a
// new computation. An Escalation is safe for concurrent use.
type Escalation struct {
	logger *slog.Logger

	mu    sync.Mutex
	diags map[string]*Diagnostic
}

// NewEscalation returns an Escalation logging to logger (slog.Default()
// when nil).
func NewEscalation(logger *slog.Logger) *Escalation {
	if logger == nil {
		logger = slog.Default()
	}

	return &Escalation{logger: logger, diags: make(map[string]*Diagnostic)}
}

// Report records err for source and returns the level it was logged at.
func (e *Escalation) Report(source string, err error) slog.Level {
	e.mu.Lock()
	d, ok := e.diags[source]
	if !ok {
		d = &Diagnostic{Source: source, Level: slog.LevelWarn}
		e.diags[source] = d
	} else {
		d.Level = slog.LevelError
	}
	d.Count++
	d.Err = err
	level, count := d.Level, d.Count
	e.mu.Unlock()

	e.logger.Log(context.Background(), level, "numerical degeneracy, step skipped",
		slog.String("source", source),
		slog.Int("count", count),
		slog.Any("err", err))

	return level
}

// Escalated reports whether some source has reached error level.
func (e *Escalation) Escalated() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, d := range e.diags {
		if d.Level >= slog.LevelError {
			return true
		}
	}

	return false
}

// Diagnostics returns a snapshot of the reports, sorted by source.
func (e *Escalation) Diagnostics() []Diagnostic {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Diagnostic, 0, len(e.diags))
	for _, d := range e.diags {
		out = append(out, *d)
	}
	slices.SortFunc(out, func(a, b Diagnostic) int { return cmp.Compare(a.Source, b.Source) })

	return out
}

// Reset forgets every report.
func (e *Escalation) Reset() {
	e.mu.Lock()
	clear(e.diags)
	e.mu.Unlock()
}
