package driven

import (
	"context"
	"time"
)

// HistoryEntry is one recorded search.
type HistoryEntry struct {
	// ID is the storage-assigned row identifier.
	ID int64

	// Query is the query text as entered.
	Query string

	// PageSize is the page size the session used.
	PageSize int

	// TotalHits is the backend's total-hits hint at search time.
	TotalHits int

	// SearchedAt is when the search was issued.
	SearchedAt time.Time
}

// HistoryStore persists past searches for recall.
type HistoryStore interface {
	// RecordSearch stores one search.
	RecordSearch(ctx context.Context, entry *HistoryEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)

	// Clear removes all recorded searches.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
