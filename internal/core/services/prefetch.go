package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/skim-search/skim-cli/internal/core/domain"
	"github.com/skim-search/skim-cli/internal/core/ports/driven"
	"github.com/skim-search/skim-cli/internal/logger"
)

// PrefetchScheduler fills the prefetch window and performs all gateway
// fetches for one session. It owns entry-cursor resolution, including
// the backfill-from-start recovery path for non-contiguous jumps, and
// it detects stream exhaustion.
//
// A failed refill never mutates the current page, never drops cached
// pages and never commits a partial window: pages are applied to the
// cache as one batch after the whole response has been validated.
type PrefetchScheduler struct {
	gateway driven.RankingGateway
	cache   *PageCache
	window  *WindowController
	query   domain.Query

	mu        sync.Mutex
	totalHits int
	tookMS    int
}

// NewPrefetchScheduler creates a scheduler for one session.
func NewPrefetchScheduler(
	gateway driven.RankingGateway,
	cache *PageCache,
	window *WindowController,
	query domain.Query,
) *PrefetchScheduler {
	return &PrefetchScheduler{
		gateway: gateway,
		cache:   cache,
		window:  window,
		query:   query,
	}
}

// Refill fetches up to WindowSpan pages centred on centre and commits
// them to the cache and window. It reports stream exhaustion when the
// response produces fewer pages than requested.
func (p *PrefetchScheduler) Refill(ctx context.Context, centre int) error {
	start := domain.WindowStart(centre)
	logger.Debug("Refill: centre=%d, window start=%d", centre, start)

	entry, err := p.entryCursor(ctx, start)
	if err != nil {
		return fmt.Errorf("resolve entry cursor for page %d: %w", start, err)
	}

	resp, err := p.search(ctx, p.query.PageSize*domain.WindowSpan, entry)
	if err != nil {
		return fmt.Errorf("window fetch from page %d: %w", start, err)
	}

	pages := slicePages(start, p.query.PageSize, resp.Results)
	if len(pages) == 0 {
		// The stream ends before the requested window.
		p.window.MarkExhausted(start - 1)
		logger.Debug("Refill: stream exhausted before page %d", start)
		return nil
	}

	p.cache.PutBatch(pages)
	p.window.Commit(start, len(pages))

	last := pages[len(pages)-1]
	if len(pages) < domain.WindowSpan || last.Short(p.query.PageSize) {
		p.window.MarkExhausted(last.Number)
		logger.Debug("Refill: stream exhausted at page %d", last.Number)
	}

	logger.Debug("Refill: committed pages %d-%d", start, last.Number)
	return nil
}

// FetchPage synchronously fetches a single page, resolving its entry
// cursor first. Used for page 1 on session start and for navigation to
// uncached pages.
func (p *PrefetchScheduler) FetchPage(ctx context.Context, number int) (*domain.Page, error) {
	entry, err := p.entryCursor(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("resolve entry cursor for page %d: %w", number, err)
	}

	resp, err := p.search(ctx, p.query.PageSize, entry)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", number, err)
	}

	if len(resp.Results) == 0 && number > 1 {
		// The stream ended at some earlier page.
		p.window.MarkExhausted(number - 1)
		return nil, domain.ErrPageOutOfRange
	}

	page := domain.Page{Number: number, Items: resp.Results}
	p.cache.Put(page)
	if page.Short(p.query.PageSize) {
		p.window.MarkExhausted(number)
	}

	return &page, nil
}

// Stats returns the backend's latest total-hits hint and query time.
func (p *PrefetchScheduler) Stats() (totalHits, tookMS int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalHits, p.tookMS
}

// entryCursor resolves the cursor that a fetch of page number resumes
// from: nil for page 1, otherwise the end cursor of the page before.
// A missing cursor triggers a backfill from the start of the stream.
func (p *PrefetchScheduler) entryCursor(ctx context.Context, number int) (*domain.Cursor, error) {
	if number <= 1 {
		return nil, nil
	}
	if cursor, ok := p.cache.EndCursor(number - 1); ok {
		return cursor, nil
	}
	return p.backfill(ctx, number-1)
}

// backfill reconstructs missing cursors by fetching pages 1..through
// from the top of the stream in one request and slicing them into
// cached pages. This is an O(page × size) recovery path taken only on
// non-contiguous jumps; the steady-state forward/backward flow always
// finds its cursor in the cache.
func (p *PrefetchScheduler) backfill(ctx context.Context, through int) (*domain.Cursor, error) {
	logger.Debug("Backfill: reconstructing cursors for pages 1-%d", through)

	resp, err := p.search(ctx, through*p.query.PageSize, nil)
	if err != nil {
		return nil, fmt.Errorf("backfill through page %d: %w", through, err)
	}

	pages := slicePages(1, p.query.PageSize, resp.Results)
	p.cache.PutBatch(pages)

	if len(pages) > 0 {
		last := pages[len(pages)-1]
		if last.Short(p.query.PageSize) {
			p.window.MarkExhausted(last.Number)
		}
	}

	cursor, ok := p.cache.EndCursor(through)
	if !ok {
		// The stream is shorter than the jump target assumed.
		end := len(pages)
		if end < 1 {
			end = 1
		}
		p.window.MarkExhausted(end)
		return nil, domain.ErrPageOutOfRange
	}

	return cursor, nil
}

// search issues one gateway request and validates the response against
// the keyset contract before anything is cached.
func (p *PrefetchScheduler) search(ctx context.Context, size int, cursor *domain.Cursor) (*driven.PageResponse, error) {
	resp, err := p.gateway.Search(ctx, driven.PageRequest{
		Query:   p.query.Text,
		Size:    size,
		Cursor:  cursor,
		Filters: p.query.Filters,
	})
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateOrder(cursor, resp.Results); err != nil {
		logger.Warn("Gateway response violates cursor order: %d items after cursor %v", len(resp.Results), cursor)
		return nil, err
	}

	p.mu.Lock()
	p.totalHits = resp.TotalHits
	p.tookMS = resp.TookMS
	p.mu.Unlock()

	return resp, nil
}

// slicePages splits items into consecutive pages of size starting at
// page number start. The final page may be short; empty chunks are not
// produced.
func slicePages(start, size int, items []domain.ResultItem) []domain.Page {
	var pages []domain.Page
	for offset := 0; offset < len(items); offset += size {
		end := offset + size
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, domain.Page{
			Number: start + len(pages),
			Items:  items[offset:end],
		})
	}
	return pages
}
