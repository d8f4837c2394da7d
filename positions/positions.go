// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: positions/positions.go
// Summary: SQLite store remembering the last scroll position per file.
// Usage: scrollview restores the first visible row on open and records it on
// exit. Paths are stored absolute so the same file matches from any cwd.

package positions

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texelscroll/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
    path TEXT PRIMARY KEY,
    top_row INTEGER NOT NULL,
    updated_at INTEGER NOT NULL -- UnixNano
);

CREATE INDEX IF NOT EXISTS idx_positions_updated ON positions(updated_at);
`

// Store maps file paths to their last first-visible row.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath returns positions.db inside the config root.
func DefaultPath() (string, error) {
	root, err := config.Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "positions.db"), nil
}

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(2000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func key(file string) string {
	if abs, err := filepath.Abs(file); err == nil {
		return abs
	}
	return filepath.Clean(file)
}

// Get returns the stored row for file. ok is false when nothing is stored.
func (s *Store) Get(file string) (row int, ok bool, err error) {
	err = s.db.QueryRow("SELECT top_row FROM positions WHERE path = ?", key(file)).Scan(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query position: %w", err)
	}
	return row, true, nil
}

// Put records row for file. Negative rows are stored as zero.
func (s *Store) Put(file string, row int) error {
	if row < 0 {
		row = 0
	}
	_, err := s.db.Exec(`
INSERT INTO positions (path, top_row, updated_at) VALUES (?, ?, ?)
ON CONFLICT(path) DO UPDATE SET top_row = excluded.top_row, updated_at = excluded.updated_at`,
		key(file), row, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("store position: %w", err)
	}
	return nil
}

// Prune keeps only the keep most recently updated entries.
func (s *Store) Prune(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.Exec(`
DELETE FROM positions WHERE path NOT IN (
    SELECT path FROM positions ORDER BY updated_at DESC LIMIT ?
)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune positions: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
