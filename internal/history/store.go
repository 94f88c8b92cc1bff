// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists the final report of each merge run in a small
// SQLite database, giving the CLI a queryable audit trail.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/snapmerge/pkg/types"
)

const dbFile = "history.db"

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database under dir, creating the
// schema if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		input TEXT NOT NULL,
		output TEXT NOT NULL,
		total_found INTEGER NOT NULL,
		merged_count INTEGER NOT NULL,
		converted_count INTEGER NOT NULL,
		skipped_count INTEGER NOT NULL,
		skipped TEXT,
		merge_skipped TEXT,
		output_pages INTEGER
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record inserts one completed run.
func (s *Store) Record(ctx context.Context, r types.Report) error {
	skippedJSON, _ := json.Marshal(r.Skipped)
	mergeSkippedJSON, _ := json.Marshal(r.MergeSkipped)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, duration_ms, input, output, total_found,
			merged_count, converted_count, skipped_count, skipped, merge_skipped, output_pages)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.StartedAt.UTC().Format(time.RFC3339Nano), r.Duration.Milliseconds(),
		r.Input, r.Output, r.TotalFound,
		r.MergedCount, r.ConvertedCount, r.SkippedCount,
		string(skippedJSON), string(mergeSkippedJSON), r.OutputPages,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.Report, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT started_at, duration_ms, input, output, total_found,
			merged_count, converted_count, skipped_count, skipped, merge_skipped, output_pages
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var reports []types.Report
	for rows.Next() {
		var (
			r                          types.Report
			startedAt                  string
			durationMS                 int64
			skippedJSON, mergeSkipJSON string
		)
		if err := rows.Scan(&startedAt, &durationMS, &r.Input, &r.Output, &r.TotalFound,
			&r.MergedCount, &r.ConvertedCount, &r.SkippedCount,
			&skippedJSON, &mergeSkipJSON, &r.OutputPages); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			r.StartedAt = t
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		json.Unmarshal([]byte(skippedJSON), &r.Skipped)
		json.Unmarshal([]byte(mergeSkipJSON), &r.MergeSkipped)

		reports = append(reports, r)
	}
	return reports, rows.Err()
}
