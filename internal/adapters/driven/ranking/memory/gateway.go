// Package memory provides an in-memory driven.RankingGateway over a
// seeded corpus. It implements the exact keyset contract the real
// backend promises (score descending, doc ID ascending on ties, strict
// cursor filtering), so the pagination core can run against it in
// tests and in --demo mode without a backend. Scoring is a naive term
// overlap; real ranking belongs to the backend.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skim-search/skim-cli/internal/core/domain"
	"github.com/skim-search/skim-cli/internal/core/ports/driven"
)

// Ensure Gateway implements the interface.
var _ driven.RankingGateway = (*Gateway)(nil)

const snippetLength = 160

// Gateway is an in-memory ranking gateway.
type Gateway struct {
	mu      sync.RWMutex
	docs    map[string]domain.Document
	version string
}

// NewGateway creates a gateway over the given corpus.
func NewGateway(docs []domain.Document) *Gateway {
	g := &Gateway{
		docs:    make(map[string]domain.Document, len(docs)),
		version: uuid.NewString(),
	}
	for _, doc := range docs {
		g.docs[doc.DocID] = doc
	}
	return g
}

// Search scores the corpus against the query and returns the slice of
// the ranked stream strictly following the request cursor.
func (g *Gateway) Search(_ context.Context, req driven.PageRequest) (*driven.PageResponse, error) {
	started := time.Now()

	g.mu.RLock()
	defer g.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(req.Query))

	var ranked []domain.ResultItem
	for _, doc := range g.docs {
		if !matchesFilters(doc, req.Filters) {
			continue
		}
		score := overlapScore(doc, terms, req.Filters)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, domain.ResultItem{
			DocID:     doc.DocID,
			Title:     doc.Title,
			Snippet:   snippet(doc.Body),
			Score:     score,
			URL:       doc.URL,
			Timestamp: doc.Timestamp,
			Lang:      doc.Lang,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return domain.RankedBefore(ranked[i], ranked[j])
	})

	results := make([]domain.ResultItem, 0, req.Size)
	for _, item := range ranked {
		if !req.Cursor.Follows(item) {
			continue
		}
		results = append(results, item)
		if len(results) == req.Size {
			break
		}
	}

	return &driven.PageResponse{
		TotalHits: len(ranked),
		TookMS:    int(time.Since(started).Milliseconds()),
		Results:   results,
	}, nil
}

// Health reports the corpus size and index version.
func (g *Gateway) Health(_ context.Context) (*driven.HealthStatus, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return &driven.HealthStatus{
		Status:       "ok",
		DocsCount:    len(g.docs),
		IndexVersion: g.version,
	}, nil
}

// Ingest stores new documents. Documents with an already known ID are
// ignored, matching the backend's ingest semantics.
func (g *Gateway) Ingest(_ context.Context, docs []domain.Document) (*driven.IngestReceipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ingested := 0
	for _, doc := range docs {
		if _, exists := g.docs[doc.DocID]; exists {
			continue
		}
		g.docs[doc.DocID] = doc
		ingested++
	}

	if ingested > 0 {
		g.version = uuid.NewString()
	}

	return &driven.IngestReceipt{
		Ingested:     ingested,
		UpdatedIndex: ingested > 0,
		IndexVersion: g.version,
	}, nil
}

// overlapScore counts query terms present in the searchable text.
func overlapScore(doc domain.Document, terms []string, filters *domain.SearchFilters) float64 {
	var text string
	switch {
	case filters != nil && filters.Field == domain.FieldTitle:
		text = doc.Title
	case filters != nil && filters.Field == domain.FieldBody:
		text = doc.Body
	default:
		text = doc.Title + " " + doc.Body
	}
	text = strings.ToLower(text)

	score := 0.0
	for _, term := range terms {
		if strings.Contains(text, term) {
			score++
		}
	}
	return score
}

// matchesFilters applies language and time-range filters. ISO 8601
// timestamps compare correctly as strings.
func matchesFilters(doc domain.Document, filters *domain.SearchFilters) bool {
	if filters == nil {
		return true
	}
	if filters.Lang != "" && doc.Lang != filters.Lang {
		return false
	}
	if filters.TimeFrom != "" && (doc.Timestamp == "" || doc.Timestamp < filters.TimeFrom) {
		return false
	}
	if filters.TimeTo != "" && (doc.Timestamp == "" || doc.Timestamp > filters.TimeTo) {
		return false
	}
	return true
}

// snippet returns a short extract of the body.
func snippet(body string) string {
	body = strings.TrimSpace(body)
	if len(body) <= snippetLength {
		return body
	}
	return body[:snippetLength] + "..."
}
