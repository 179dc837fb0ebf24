package driven

import (
	"context"

	"github.com/skim-search/skim-cli/internal/core/domain"
)

// PageRequest asks the ranking backend for the next Size items of the
// ranked stream for Query, strictly following Cursor. A nil Cursor
// starts from the top of the stream.
type PageRequest struct {
	// Query is the raw query string.
	Query string

	// Size is the maximum number of items to return.
	Size int

	// Cursor is the keyset boundary to resume from, or nil.
	Cursor *domain.Cursor

	// Filters optionally narrows the result set.
	Filters *domain.SearchFilters
}

// PageResponse is one slice of the ranked stream.
// Results are sorted score descending, doc ID ascending on ties; when
// the request carried a cursor, every item strictly follows it. Fewer
// than Size items means the stream is exhausted.
type PageResponse struct {
	// TotalHits is the backend's hint of the total matching documents.
	// It may drift as the index is updated live.
	TotalHits int

	// TookMS is the backend-reported query time in milliseconds.
	TookMS int

	// Results are the ranked items, in stream order.
	Results []domain.ResultItem
}

// HealthStatus reports the ranking backend's health.
type HealthStatus struct {
	// Status is the backend status string, "ok" when healthy.
	Status string

	// DocsCount is the number of indexed documents.
	DocsCount int

	// IndexVersion identifies the current index build.
	IndexVersion string
}

// IngestReceipt reports the outcome of a document ingest.
type IngestReceipt struct {
	// Ingested is the number of newly stored documents.
	Ingested int

	// UpdatedIndex reports whether the index was rebuilt or extended.
	UpdatedIndex bool

	// IndexVersion identifies the index build after the ingest.
	IndexVersion string
}

// RankingGateway is the boundary to the external ranking service.
// It owns scoring, tokenisation and index maintenance; skim only
// consumes ranked pages through the keyset contract.
type RankingGateway interface {
	// Search returns the next slice of the ranked stream.
	Search(ctx context.Context, req PageRequest) (*PageResponse, error)

	// Health reports backend status, read-only.
	Health(ctx context.Context) (*HealthStatus, error)

	// Ingest submits documents for indexing.
	Ingest(ctx context.Context, docs []domain.Document) (*IngestReceipt, error)
}
