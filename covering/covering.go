// SPDX-License-Identifier: MIT

package covering

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/ivlath/search"
	"github.com/katalvlaran/ivlath/vector"
)

// Entry is one box of a covering.
type Entry struct {
	Box    vector.Vector
	Status search.Status
}

// Covering is the result set of one run.
type Covering struct {
	RunID   uuid.UUID
	Problem string
	Vars    []string
	Created time.Time
	Entries []Entry
	Stats   search.Stats
}

// New returns an empty covering with a fresh run id.
func New(problem string, vars []string) *Covering {
	return &Covering{
		RunID:   uuid.Must(uuid.NewV7()),
		Problem: problem,
		Vars:    append([]string(nil), vars...),
		Created: time.Now().UTC(),
	}
}

// FromReport returns a covering holding every result of rep.
func FromReport(problem string, vars []string, rep search.Report) *Covering {
	c := New(problem, vars)
	for _, r := range rep.Results {
		c.Add(r.Box, r.Status)
	}
	c.Stats = rep.Stats

	return c
}

// Add appends a box. It panics when the box size differs from the number
// of variables.
func (c *Covering) Add(box vector.Vector, st search.Status) {
	if len(box) != len(c.Vars) {
		panic(fmt.Errorf("covering.Add(%d vs %d): %w", len(box), len(c.Vars), vector.ErrDimensionMismatch))
	}
	c.Entries = append(c.Entries, Entry{Box: box.Clone(), Status: st})
}

// Len returns the number of entries.
func (c *Covering) Len() int { return len(c.Entries) }

// Filter returns the boxes of the given status in entry order.
func (c *Covering) Filter(st search.Status) []vector.Vector {
	var out []vector.Vector
	for _, e := range c.Entries {
		if e.Status == st {
			out = append(out, e.Box)
		}
	}

	return out
}

// Count returns the number of entries of the given status.
func (c *Covering) Count(st search.Status) int {
	n := 0
	for _, e := range c.Entries {
		if e.Status == st {
			n++
		}
	}

	return n
}

// Volume returns the summed volume of the boxes of the given status.
func (c *Covering) Volume(st search.Status) float64 {
	v := 0.0
	for _, e := range c.Entries {
		if e.Status == st {
			v += e.Box.Volume()
		}
	}

	return v
}

// Hull returns the smallest box enclosing every entry (empty when there is
// none).
func (c *Covering) Hull() vector.Vector {
	h := vector.Empty(len(c.Vars))
	for _, e := range c.Entries {
		h = h.Hull(e.Box)
	}

	return h
}

// statusCodes are the one-letter status codes of the text format.
var statusCodes = map[search.Status]string{
	search.Solution:   "S",
	search.Boundary:   "B",
	search.Infeasible: "I",
	search.Pending:    "P",
}

// ParseStatus maps a status name ("solution") or code ("S") back to the
// status.
func ParseStatus(s string) (search.Status, error) {
	for st := search.Solution; st <= search.Pending; st++ {
		if s == st.String() || s == statusCodes[st] {
			return st, nil
		}
	}

	return 0, fmt.Errorf("covering.ParseStatus(%q): %w", s, ErrFormat)
}

// parseStop maps a stop reason name back to the reason.
func parseStop(s string) (search.Stop, error) {
	for st := search.Running; st <= search.Cancelled; st++ {
		if s == st.String() {
			return st, nil
		}
	}

	return 0, fmt.Errorf("covering: stop %q: %w", s, ErrFormat)
}
