// Package httpgw implements driven.RankingGateway over the ranking
// backend's JSON HTTP API (/search, /health, /admin/ingest).
package httpgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/skim-search/skim-cli/internal/core/domain"
	"github.com/skim-search/skim-cli/internal/core/ports/driven"
	"github.com/skim-search/skim-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second

	// DefaultRequestsPerSecond caps the request rate to the backend.
	// Prefetch issues bulk fetches, so the browsing steady state stays
	// well under this.
	DefaultRequestsPerSecond = 10
)

// Ensure Client implements the interface.
var _ driven.RankingGateway = (*Client)(nil)

// Client is an HTTP client for the ranking backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retryDelay time.Duration
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), DefaultRequestsPerSecond),
		retryDelay: RetryDelay,
	}
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// SetRateLimit overrides the request rate cap.
func (c *Client) SetRateLimit(rps float64) {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// searchRequest mirrors the backend's /search request body. A nil
// cursor marshals to null, which the backend reads as "start of the
// ranked stream".
type searchRequest struct {
	Query   string                `json:"query"`
	Size    int                   `json:"size"`
	Cursor  *domain.Cursor        `json:"cursor"`
	Filters *domain.SearchFilters `json:"filters,omitempty"`
}

type searchResponse struct {
	TotalHits int                 `json:"total_hits"`
	TookMS    int                 `json:"took_ms"`
	Results   []domain.ResultItem `json:"results"`
}

type healthResponse struct {
	Status       string `json:"status"`
	DocsCount    int    `json:"docs_count"`
	IndexVersion string `json:"index_version"`
}

type ingestRequest struct {
	Docs []domain.Document `json:"docs"`
}

type ingestResponse struct {
	Ingested     int    `json:"ingested"`
	UpdatedIndex bool   `json:"updated_index"`
	IndexVersion string `json:"index_version"`
}

// Search returns the next slice of the ranked stream.
func (c *Client) Search(ctx context.Context, req driven.PageRequest) (*driven.PageResponse, error) {
	body := searchRequest{
		Query:   req.Query,
		Size:    req.Size,
		Cursor:  req.Cursor,
		Filters: req.Filters,
	}

	var resp searchResponse
	if err := c.doJSON(ctx, http.MethodPost, "/search", body, &resp); err != nil {
		return nil, err
	}

	return &driven.PageResponse{
		TotalHits: resp.TotalHits,
		TookMS:    resp.TookMS,
		Results:   resp.Results,
	}, nil
}

// Health reports backend status.
func (c *Client) Health(ctx context.Context) (*driven.HealthStatus, error) {
	var resp healthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}

	return &driven.HealthStatus{
		Status:       resp.Status,
		DocsCount:    resp.DocsCount,
		IndexVersion: resp.IndexVersion,
	}, nil
}

// Ingest submits documents for indexing.
func (c *Client) Ingest(ctx context.Context, docs []domain.Document) (*driven.IngestReceipt, error) {
	var resp ingestResponse
	if err := c.doJSON(ctx, http.MethodPost, "/admin/ingest", ingestRequest{Docs: docs}, &resp); err != nil {
		return nil, err
	}

	return &driven.IngestReceipt{
		Ingested:     resp.Ingested,
		UpdatedIndex: resp.UpdatedIndex,
		IndexVersion: resp.IndexVersion,
	}, nil
}

// doJSON performs one JSON request with rate limiting and bounded
// retries. Network errors and 5xx responses are retried with backoff;
// 4xx responses fail immediately.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1))
			logger.Debug("Retrying %s %s in %v (attempt %d)", method, path, delay, attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		retryable, err := c.doOnce(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}

	return lastErr
}

// doOnce performs a single request attempt. The first return value
// reports whether a failure is worth retrying.
func (c *Client) doOnce(ctx context.Context, method, path string, payload []byte, out any) (bool, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse
		return true, fmt.Errorf("%w: %s %s returned %d", domain.ErrGatewayUnavailable, method, path, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("%w: %s %s returned %d", domain.ErrGatewayUnavailable, method, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}

	return false, nil
}
