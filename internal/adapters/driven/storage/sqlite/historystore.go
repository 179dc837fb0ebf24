// Package sqlite provides the SQLite-backed search history store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/skim-search/skim-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore persists past searches in a local SQLite database.
type HistoryStore struct {
	db   *sql.DB
	path string
}

// NewHistoryStore opens (and if needed creates) the history database.
// If dataDir is empty, defaults to ~/.skim/data/history.db.
func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".skim", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL mode for better concurrency with a browsing TUI open
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &HistoryStore{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// migrate creates the schema if missing.
func (s *HistoryStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS search_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			page_size INTEGER NOT NULL,
			total_hits INTEGER NOT NULL,
			searched_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_search_history_searched_at
			ON search_history(searched_at DESC);
	`)
	return err
}

// RecordSearch stores one search.
func (s *HistoryStore) RecordSearch(ctx context.Context, entry *driven.HistoryEntry) error {
	if entry == nil || entry.Query == "" {
		return nil
	}

	searchedAt := entry.SearchedAt
	if searchedAt.IsZero() {
		searchedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO search_history (query, page_size, total_hits, searched_at)
		VALUES (?, ?, ?, ?)
	`, entry.Query, entry.PageSize, entry.TotalHits, searchedAt.UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, page_size, total_hits, searched_at
		FROM search_history
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []driven.HistoryEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry driven.HistoryEntry
		var searchedAt string
		if err := rows.Scan(&entry.ID, &entry.Query, &entry.PageSize, &entry.TotalHits, &searchedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entry.SearchedAt, err = time.Parse(time.RFC3339, searchedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing searched_at: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}

	return entries, nil
}

// Clear removes all recorded searches.
func (s *HistoryStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM search_history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *HistoryStore) Path() string {
	return s.path
}
