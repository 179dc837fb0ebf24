package httpgw

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skim-search/skim-cli/internal/core/domain"
	"github.com/skim-search/skim-cli/internal/core/ports/driven"
)

func fastClient(url string) *Client {
	c := NewClient(url)
	c.retryDelay = time.Millisecond
	return c
}

func TestSearch(t *testing.T) {
	var gotBody searchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(searchResponse{ //nolint:errcheck // test server
			TotalHits: 2,
			TookMS:    7,
			Results: []domain.ResultItem{
				{DocID: "doc-1", Title: "BM25 ranking explained", Score: 3.2, Lang: "en"},
				{DocID: "doc-2", Title: "Keyset pagination", Score: 1.1, Lang: "en"},
			},
		})
	}))
	defer server.Close()

	client := fastClient(server.URL)
	resp, err := client.Search(context.Background(), driven.PageRequest{
		Query:  "bm25",
		Size:   10,
		Cursor: &domain.Cursor{LastScore: 4.5, LastID: "doc-0"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalHits)
	assert.Equal(t, 7, resp.TookMS)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "doc-1", resp.Results[0].DocID)

	assert.Equal(t, "bm25", gotBody.Query)
	assert.Equal(t, 10, gotBody.Size)
	require.NotNil(t, gotBody.Cursor)
	assert.Equal(t, "doc-0", gotBody.Cursor.LastID)
}

func TestSearchNilCursorSerialisesAsNull(t *testing.T) {
	var raw map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		json.NewEncoder(w).Encode(searchResponse{}) //nolint:errcheck // test server
	}))
	defer server.Close()

	client := fastClient(server.URL)
	_, err := client.Search(context.Background(), driven.PageRequest{Query: "q", Size: 5})
	require.NoError(t, err)

	assert.Equal(t, "null", string(raw["cursor"]), "start of stream must be an explicit null")
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(healthResponse{ //nolint:errcheck // test server
			Status:       "ok",
			DocsCount:    1234,
			IndexVersion: "v42",
		})
	}))
	defer server.Close()

	client := fastClient(server.URL)
	status, err := client.Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, 1234, status.DocsCount)
	assert.Equal(t, "v42", status.IndexVersion)
}

func TestIngest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/ingest", r.URL.Path)
		var req ingestRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(ingestResponse{ //nolint:errcheck // test server
			Ingested:     len(req.Docs),
			UpdatedIndex: true,
			IndexVersion: "v43",
		})
	}))
	defer server.Close()

	client := fastClient(server.URL)
	receipt, err := client.Ingest(context.Background(), []domain.Document{
		{DocID: "doc-9", Title: "New doc", Body: "text", Lang: "en"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, receipt.Ingested)
	assert.True(t, receipt.UpdatedIndex)
	assert.Equal(t, "v43", receipt.IndexVersion)
}

func TestRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(healthResponse{Status: "ok"}) //nolint:errcheck // test server
	}))
	defer server.Close()

	client := fastClient(server.URL)
	status, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := fastClient(server.URL)
	_, err := client.Health(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := fastClient(server.URL)
	_, err := client.Health(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	assert.Equal(t, int32(MaxRetries+1), calls.Load())
}

func TestUnreachableBackend(t *testing.T) {
	client := fastClient("http://127.0.0.1:1")
	_, err := client.Health(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}
