// SPDX-License-Identifier: MIT

package covering

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/katalvlaran/ivlath/interval"
	"github.com/katalvlaran/ivlath/search"
	"github.com/katalvlaran/ivlath/vector"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is recorded in PRAGMA user_version.
const schemaVersion = 1

// Store keeps coverings in a SQLite database.
type Store struct {
	db *sql.DB
}

// RunInfo summarises a stored run.
type RunInfo struct {
	ID      uuid.UUID
	Problem string
	Vars    []string
	Created time.Time
	Stats   search.Stats
	Boxes   int
}

// Open creates or opens the database at path and applies the schema.
// The connection uses WAL journaling, a 5 s busy timeout and enforced
// foreign keys.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to execute %q: %w", p, err)
		}
	}

	return nil
}

func applySchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than %d", version, schemaVersion)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

const insertRun = `INSERT INTO runs (id, problem, vars, created_at,
	cells, bisections, solutions, boundaries, infeasible, pending, pruned,
	max_depth, max_buffer, elapsed_ns, stop)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SaveRun stores c in one transaction. Saving a run id twice fails.
func (s *Store) SaveRun(ctx context.Context, c *Covering) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	st := c.Stats
	if _, err := tx.ExecContext(ctx, insertRun,
		c.RunID.String(), c.Problem, strings.Join(c.Vars, " "), c.Created.UnixNano(),
		st.Cells, st.Bisections, st.Solutions, st.Boundaries, st.Infeasible, st.Pending, st.Pruned,
		st.MaxDepth, st.MaxBuffer, int64(st.Elapsed), st.Stop.String(),
	); err != nil {
		return fmt.Errorf("failed to insert run %s: %w", c.RunID, err)
	}

	ins, err := tx.PrepareContext(ctx, "INSERT INTO boxes (run_id, seq, status, bounds) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare box insert: %w", err)
	}
	defer ins.Close()
	for i, e := range c.Entries {
		if _, err := ins.ExecContext(ctx, c.RunID.String(), i, e.Status.String(), encodeBox(e.Box)); err != nil {
			return fmt.Errorf("failed to insert box %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", c.RunID, err)
	}

	return nil
}

const selectRun = `SELECT id, problem, vars, created_at,
	cells, bisections, solutions, boundaries, infeasible, pending, pruned,
	max_depth, max_buffer, elapsed_ns, stop,
	(SELECT COUNT(*) FROM boxes WHERE boxes.run_id = runs.id)
	FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunInfo, error) {
	var (
		info    RunInfo
		id      string
		vars    string
		created int64
		elapsed int64
		stop    string
	)
	st := &info.Stats
	err := row.Scan(&id, &info.Problem, &vars, &created,
		&st.Cells, &st.Bisections, &st.Solutions, &st.Boundaries, &st.Infeasible, &st.Pending, &st.Pruned,
		&st.MaxDepth, &st.MaxBuffer, &elapsed, &stop, &info.Boxes)
	if err != nil {
		return RunInfo{}, err
	}
	if info.ID, err = uuid.Parse(id); err != nil {
		return RunInfo{}, fmt.Errorf("run id %q: %w", id, ErrFormat)
	}
	if st.Stop, err = parseStop(stop); err != nil {
		return RunInfo{}, err
	}
	info.Vars = strings.Fields(vars)
	info.Created = time.Unix(0, created).UTC()
	st.Elapsed = time.Duration(elapsed)

	return info, nil
}

// ListRuns returns every stored run, oldest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, selectRun+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		info, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return out, nil
}

// LoadRun returns the covering stored under id, or ErrNotFound.
func (s *Store) LoadRun(ctx context.Context, id uuid.UUID) (*Covering, error) {
	info, err := scanRun(s.db.QueryRowContext(ctx, selectRun+" WHERE id = ?", id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("covering.LoadRun(%s): %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	c := &Covering{
		RunID:   info.ID,
		Problem: info.Problem,
		Vars:    info.Vars,
		Created: info.Created,
		Stats:   info.Stats,
		Entries: make([]Entry, 0, info.Boxes),
	}

	rows, err := s.db.QueryContext(ctx, "SELECT status, bounds FROM boxes WHERE run_id = ? ORDER BY seq", id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load boxes of %s: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status string
			blob   []byte
		)
		if err := rows.Scan(&status, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan box: %w", err)
		}
		st, err := ParseStatus(status)
		if err != nil {
			return nil, err
		}
		box, err := decodeBox(blob, len(c.Vars))
		if err != nil {
			return nil, err
		}
		c.Entries = append(c.Entries, Entry{Box: box, Status: st})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load boxes of %s: %w", id, err)
	}

	return c, nil
}

// DeleteRun removes a run and its boxes.
func (s *Store) DeleteRun(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("covering.DeleteRun(%s): %w", id, ErrNotFound)
	}

	return nil
}

// encodeBox packs the bounds as little-endian float64 pairs. An empty box
// encodes to no bytes.
func encodeBox(b vector.Vector) []byte {
	out := make([]byte, 0, 16*len(b))
	if b.IsEmpty() {
		return out
	}
	for _, x := range b {
		out = binary.LittleEndian.AppendUint64(out, math.Float64bits(x.LB()))
		out = binary.LittleEndian.AppendUint64(out, math.Float64bits(x.UB()))
	}

	return out
}

func decodeBox(blob []byte, n int) (vector.Vector, error) {
	if len(blob) == 0 {
		return vector.Empty(n), nil
	}
	if len(blob) != 16*n {
		return nil, fmt.Errorf("box of %d bytes for %d variables: %w", len(blob), n, ErrFormat)
	}
	box := make(vector.Vector, n)
	for i := range box {
		lb := math.Float64frombits(binary.LittleEndian.Uint64(blob[16*i:]))
		ub := math.Float64frombits(binary.LittleEndian.Uint64(blob[16*i+8:]))
		box[i] = interval.New(lb, ub)
	}

	return box, nil
}
