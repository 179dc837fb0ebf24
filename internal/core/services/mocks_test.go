package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/skim-search/skim-cli/internal/core/domain"
	"github.com/skim-search/skim-cli/internal/core/ports/driven"
)

// mockGateway implements driven.RankingGateway over a fixed ranked
// corpus with real keyset semantics: results follow the supplied
// cursor in (score desc, doc ID asc) order.
type mockGateway struct {
	mu        sync.Mutex
	items     []domain.ResultItem
	searchErr error
	calls     []driven.PageRequest
}

// newMockGateway builds a gateway over n distinctly scored items,
// already in ranked order.
func newMockGateway(n int) *mockGateway {
	items := make([]domain.ResultItem, n)
	for i := range items {
		items[i] = domain.ResultItem{
			DocID:   fmt.Sprintf("doc-%04d", i+1),
			Title:   fmt.Sprintf("Document %d", i+1),
			Snippet: "snippet",
			Score:   float64(n - i),
			Lang:    "en",
		}
	}
	return &mockGateway{items: items}
}

func (m *mockGateway) Search(_ context.Context, req driven.PageRequest) (*driven.PageResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)
	if m.searchErr != nil {
		return nil, m.searchErr
	}

	var results []domain.ResultItem
	for _, item := range m.items {
		if !req.Cursor.Follows(item) {
			continue
		}
		results = append(results, item)
		if len(results) == req.Size {
			break
		}
	}

	return &driven.PageResponse{
		TotalHits: len(m.items),
		TookMS:    3,
		Results:   results,
	}, nil
}

func (m *mockGateway) Health(_ context.Context) (*driven.HealthStatus, error) {
	return &driven.HealthStatus{Status: "ok", DocsCount: len(m.items), IndexVersion: "v1"}, nil
}

func (m *mockGateway) Ingest(_ context.Context, _ []domain.Document) (*driven.IngestReceipt, error) {
	return &driven.IngestReceipt{}, nil
}

// setSearchErr injects a transport failure for subsequent searches.
func (m *mockGateway) setSearchErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchErr = err
}

// callCount returns the number of Search calls so far.
func (m *mockGateway) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// call returns the i-th recorded Search request.
func (m *mockGateway) call(i int) driven.PageRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[i]
}

// unorderedGateway returns items that violate the keyset contract.
type unorderedGateway struct{}

func (g *unorderedGateway) Search(_ context.Context, _ driven.PageRequest) (*driven.PageResponse, error) {
	return &driven.PageResponse{
		TotalHits: 2,
		Results: []domain.ResultItem{
			{DocID: "doc-1", Score: 1.0},
			{DocID: "doc-2", Score: 2.0},
		},
	}, nil
}

func (g *unorderedGateway) Health(_ context.Context) (*driven.HealthStatus, error) {
	return &driven.HealthStatus{Status: "ok"}, nil
}

func (g *unorderedGateway) Ingest(_ context.Context, _ []domain.Document) (*driven.IngestReceipt, error) {
	return &driven.IngestReceipt{}, nil
}
