package memory

import (
	"fmt"

	"github.com/skim-search/skim-cli/internal/core/domain"
)

// SeedDocuments returns a small demo corpus for offline browsing.
func SeedDocuments() []domain.Document {
	return []domain.Document{
		{
			DocID:     "doc-1",
			Title:     "Building search APIs with modern web frameworks",
			Body:      "A walkthrough of building ranked search endpoints: request models, async handlers and deployment concerns.",
			URL:       "https://example.com/search-apis",
			Timestamp: "2025-12-01T12:00:00Z",
			Lang:      "en",
		},
		{
			DocID:     "doc-2",
			Title:     "BM25 ranking explained",
			Body:      "BM25 is a strong baseline retrieval model built on term frequency, inverse document frequency and length normalisation.",
			URL:       "https://example.com/bm25",
			Timestamp: "2025-11-15T12:00:00Z",
			Lang:      "en",
		},
		{
			DocID:     "doc-3",
			Title:     "Incremental indexing for live search systems",
			Body:      "Live indexing lets new documents become searchable without rebuilding the whole index, at the cost of a drifting ranked set.",
			URL:       "https://example.com/live-indexing",
			Timestamp: "2025-12-20T09:00:00Z",
			Lang:      "en",
		},
		{
			DocID:     "doc-4",
			Title:     "Keyset cursors for ranked result streams",
			Body:      "Offset pagination re-scans the ranked set on every request and breaks under concurrent writes; keyset cursors resume a strictly ordered scan from a boundary item.",
			URL:       "https://example.com/keyset-cursors",
			Timestamp: "2025-12-10T18:30:00Z",
			Lang:      "en",
		},
	}
}

// GenerateDocuments returns n synthetic documents that all match the
// word "search". Handy for demoing deep pagination.
func GenerateDocuments(n int) []domain.Document {
	docs := make([]domain.Document, n)
	for i := range docs {
		docs[i] = domain.Document{
			DocID: fmt.Sprintf("gen-%04d", i+1),
			Title: fmt.Sprintf("Search note %d", i+1),
			Body:  fmt.Sprintf("Synthetic search document number %d for pagination demos.", i+1),
			Lang:  "en",
		}
	}
	return docs
}
