// Package db is the storage layer of the sandbox API server. It keeps the
// whole demo dataset in SQLite so mutations survive across requests and the
// console's mutate-then-refetch cycle observes real state changes.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the sandbox SQLite database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) a SQLite database at dbPath.
// Use ":memory:" for an in-memory database (useful in tests).
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	d, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := d.Exec("PRAGMA journal_mode=WAL"); err != nil {
		d.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := d.Exec("PRAGMA foreign_keys=ON"); err != nil {
		d.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &Store{
		db:     d,
		logger: logger.With("component", "db"),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// PageQuery is the pagination portion shared by every list query.
type PageQuery struct {
	Page int
	Size int
}

// Clamp enforces the pagination limits the API documents.
func (q *PageQuery) Clamp() {
	if q.Size <= 0 {
		q.Size = 20
	}
	if q.Size > 100 {
		q.Size = 100
	}
	if q.Page < 0 {
		q.Page = 0
	}
}

func (q PageQuery) limitOffset() (int, int) {
	return q.Size, q.Page * q.Size
}

// --- time column helpers ---
// Timestamps are stored as RFC3339Nano TEXT so they sort lexicographically.

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtTime(*t)
	return &s
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func parseTimePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t := parseTime(*s)
	return &t
}
