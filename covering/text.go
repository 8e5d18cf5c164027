// SPDX-License-Identifier: MIT

package covering

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/search"
	"github.com/katalvlaran/ivlath/vector"
)

const textMagic = "# ivlath covering v1"

// WriteText writes c in the line format read by ReadText:
//
//	# ivlath covering v1
//	run <uuid>
//	problem <name>
//	created <RFC 3339 time>
//	vars <name>...
//	stats cells=.. bisections=.. ... elapsed=..
//	stop <reason>
//	<S|B|I|P> [lb, ub] [lb, ub] ...
//
// Bounds use the shortest decimal that reads back to the same float64, and
// +oo/-oo for infinities.
func (c *Covering) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, textMagic)
	fmt.Fprintf(bw, "run %s\n", c.RunID)
	fmt.Fprintf(bw, "problem %s\n", c.Problem)
	fmt.Fprintf(bw, "created %s\n", c.Created.UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(bw, "vars %s\n", strings.Join(c.Vars, " "))
	s := c.Stats
	fmt.Fprintf(bw, "stats cells=%d bisections=%d solutions=%d boundaries=%d infeasible=%d pending=%d pruned=%d max_depth=%d max_buffer=%d elapsed=%s\n",
		s.Cells, s.Bisections, s.Solutions, s.Boundaries, s.Infeasible, s.Pending, s.Pruned, s.MaxDepth, s.MaxBuffer, s.Elapsed)
	fmt.Fprintf(bw, "stop %s\n", s.Stop)
	for _, e := range c.Entries {
		bw.WriteString(statusCodes[e.Status])
		if e.Box.IsEmpty() {
			bw.WriteString(" ∅\n")
			continue
		}
		for _, x := range e.Box {
			fmt.Fprintf(bw, " [%s, %s]", formatBound(x.LB()), formatBound(x.UB()))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// ReadText parses the output of WriteText.
func ReadText(r io.Reader) (*Covering, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	c := &Covering{}
	line := 0
	bad := func(format string, args ...any) error {
		return fmt.Errorf("covering: line %d: %s: %w", line, fmt.Sprintf(format, args...), ErrFormat)
	}
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if line == 1 {
			if text != textMagic {
				return nil, bad("missing header")
			}
			continue
		}
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, rest, _ := strings.Cut(text, " ")
		switch key {
		case "run":
			id, err := uuid.Parse(rest)
			if err != nil {
				return nil, bad("run id: %v", err)
			}
			c.RunID = id
		case "problem":
			c.Problem = rest
		case "created":
			t, err := time.Parse(time.RFC3339Nano, rest)
			if err != nil {
				return nil, bad("created: %v", err)
			}
			c.Created = t
		case "vars":
			c.Vars = strings.Fields(rest)
		case "stats":
			if err := parseStats(rest, &c.Stats); err != nil {
				return nil, bad("%v", err)
			}
		case "stop":
			st, err := parseStop(rest)
			if err != nil {
				return nil, bad("%v", err)
			}
			c.Stats.Stop = st
		default:
			st, err := ParseStatus(key)
			if err != nil {
				return nil, bad("unknown record %q", key)
			}
			box, err := parseBox(rest, len(c.Vars))
			if err != nil {
				return nil, bad("%v", err)
			}
			c.Entries = append(c.Entries, Entry{Box: box, Status: st})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("covering: read: %w", err)
	}
	if line == 0 {
		return nil, fmt.Errorf("covering: empty input: %w", ErrFormat)
	}

	return c, nil
}

func parseStats(s string, out *search.Stats) error {
	ints := map[string]*int{
		"cells":      &out.Cells,
		"bisections": &out.Bisections,
		"solutions":  &out.Solutions,
		"boundaries": &out.Boundaries,
		"infeasible": &out.Infeasible,
		"pending":    &out.Pending,
		"pruned":     &out.Pruned,
		"max_depth":  &out.MaxDepth,
		"max_buffer": &out.MaxBuffer,
	}
	for _, f := range strings.Fields(s) {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("stats field %q", f)
		}
		if k == "elapsed" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("elapsed: %v", err)
			}
			out.Elapsed = d
			continue
		}
		p, ok := ints[k]
		if !ok {
			return fmt.Errorf("unknown stats field %q", k)
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %v", k, err)
		}
		*p = n
	}

	return nil
}

func parseBox(s string, n int) (vector.Vector, error) {
	s = strings.TrimSpace(s)
	if s == "∅" {
		return vector.Empty(n), nil
	}
	box := make(vector.Vector, 0, n)
	for s != "" {
		if s[0] != '[' {
			return nil, fmt.Errorf("box component %q", s)
		}
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, fmt.Errorf("unterminated component %q", s)
		}
		lo, hi, ok := strings.Cut(s[1:end], ",")
		if !ok {
			return nil, fmt.Errorf("component %q", s[:end+1])
		}
		lb, err := parseBound(lo)
		if err != nil {
			return nil, err
		}
		ub, err := parseBound(hi)
		if err != nil {
			return nil, err
		}
		if lb > ub {
			return nil, fmt.Errorf("component [%v, %v] is empty", lb, ub)
		}
		box = append(box, interval.New(lb, ub))
		s = strings.TrimSpace(s[end+1:])
	}
	if len(box) != n {
		return nil, fmt.Errorf("box has %d components, want %d", len(box), n)
	}

	return box, nil
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+oo"
	case math.IsInf(v, -1):
		return "-oo"
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseBound(s string) (float64, error) {
	switch s = strings.TrimSpace(s); s {
	case "+oo":
		return math.Inf(1), nil
	case "-oo":
		return math.Inf(-1), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("bound %q", s)
	}

	return v, nil
}

// bound is a float64 that encodes infinities as the strings "+oo"/"-oo".
type bound float64

func (b bound) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(b), 0) {
		return json.Marshal(formatBound(float64(b)))
	}

	return []byte(strconv.FormatFloat(float64(b), 'g', -1, 64)), nil
}

type jsonEntry struct {
	Status string     `json:"status"`
	Box    [][2]bound `json:"box"`
}

type jsonStats struct {
	Cells      int    `json:"cells"`
	Bisections int    `json:"bisections"`
	Solutions  int    `json:"solutions"`
	Boundaries int    `json:"boundaries"`
	Infeasible int    `json:"infeasible"`
	Pending    int    `json:"pending"`
	Pruned     int    `json:"pruned"`
	MaxDepth   int    `json:"max_depth"`
	ElapsedMS  int64  `json:"elapsed_ms"`
	Stop       string `json:"stop"`
}

type jsonCovering struct {
	RunID   string      `json:"run_id"`
	Problem string      `json:"problem"`
	Created string      `json:"created"`
	Vars    []string    `json:"vars"`
	Stats   jsonStats   `json:"stats"`
	Boxes   []jsonEntry `json:"boxes"`
}

// WriteJSON writes c as an indented JSON document.
func (c *Covering) WriteJSON(w io.Writer) error {
	s := c.Stats
	doc := jsonCovering{
		RunID:   c.RunID.String(),
		Problem: c.Problem,
		Created: c.Created.UTC().Format(time.RFC3339Nano),
		Vars:    c.Vars,
		Stats: jsonStats{
			Cells:      s.Cells,
			Bisections: s.Bisections,
			Solutions:  s.Solutions,
			Boundaries: s.Boundaries,
			Infeasible: s.Infeasible,
			Pending:    s.Pending,
			Pruned:     s.Pruned,
			MaxDepth:   s.MaxDepth,
			ElapsedMS:  s.Elapsed.Milliseconds(),
			Stop:       s.Stop.String(),
		},
		Boxes: make([]jsonEntry, 0, len(c.Entries)),
	}
	if doc.Vars == nil {
		doc.Vars = []string{}
	}
	for _, e := range c.Entries {
		je := jsonEntry{Status: e.Status.String(), Box: make([][2]bound, 0, len(e.Box))}
		if !e.Box.IsEmpty() {
			for _, x := range e.Box {
				je.Box = append(je.Box, [2]bound{bound(x.LB()), bound(x.UB())})
			}
		}
		doc.Boxes = append(doc.Boxes, je)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("covering: encode json: %w", err)
	}

	return nil
}
