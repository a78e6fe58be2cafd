// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runlog persists an opt-in history of scoring runs in a local
// SQLite database. The plain scoring path never touches it; runs are
// recorded only when asked for.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/peplab/restraintq/pkg/types"
)

// defaultListLimit bounds List when the caller passes no limit.
const defaultListLimit = 20

// Run is one recorded scoring run.
type Run struct {
	ID       int64         `json:"id" yaml:"id"`
	ScoredAt time.Time     `json:"scored_at" yaml:"scored_at"`
	Input    string        `json:"input" yaml:"input"`
	Output   string        `json:"output" yaml:"output"`
	Lengths  types.Lengths `json:"lengths" yaml:"lengths"`
	Kept     int           `json:"kept" yaml:"kept"`
	Dropped  int           `json:"dropped" yaml:"dropped"`
	Score    float64       `json:"score" yaml:"score"`
}

// Store manages the run history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the run history database at path, creating the
// parent directory and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating run history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening run history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scored_at TEXT NOT NULL,
			input_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			ls REAL NOT NULL,
			lx REAL NOT NULL,
			ly REAL NOT NULL,
			lz REAL NOT NULL,
			kept INTEGER NOT NULL,
			dropped INTEGER NOT NULL,
			score REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_scored_at ON runs(scored_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one run and returns its assigned ID. A zero ScoredAt
// is stamped with the current time.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	at := run.ScoredAt
	if at.IsZero() {
		at = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (scored_at, input_path, output_path, ls, lx, ly, lz, kept, dropped, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		at.UTC().Format(time.RFC3339Nano), run.Input, run.Output,
		run.Lengths.Ls, run.Lengths.Lx, run.Lengths.Ly, run.Lengths.Lz,
		run.Kept, run.Dropped, run.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted run ID: %w", err)
	}
	return id, nil
}

// List returns recorded runs, newest first. A non-positive limit
// applies the default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scored_at, input_path, output_path, ls, lx, ly, lz, kept, dropped, score
		 FROM runs ORDER BY scored_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var at string
		if err := rows.Scan(&r.ID, &at, &r.Input, &r.Output,
			&r.Lengths.Ls, &r.Lengths.Lx, &r.Lengths.Ly, &r.Lengths.Lz,
			&r.Kept, &r.Dropped, &r.Score); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		t, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp %q: %w", at, err)
		}
		r.ScoredAt = t
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
