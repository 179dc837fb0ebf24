package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skim-search/skim-cli/internal/core/domain"
)

func newTestScheduler(gw *mockGateway, pageSize int) (*PrefetchScheduler, *PageCache, *WindowController) {
	cache := NewPageCache()
	window := NewWindowController()
	query := domain.Query{Text: "bm25 ranking", PageSize: pageSize}
	return NewPrefetchScheduler(gw, cache, window, query), cache, window
}

func TestRefillFillsFullWindow(t *testing.T) {
	gw := newMockGateway(120)
	sched, cache, window := newTestScheduler(gw, 10)

	err := sched.Refill(context.Background(), 1)
	require.NoError(t, err)

	win, ok := window.Window()
	require.True(t, ok)
	assert.Equal(t, domain.Window{Start: 1, End: 5}, win)
	assert.Equal(t, 5, cache.Len())

	_, ok = window.KnownLast()
	assert.False(t, ok, "a full window proves nothing about the stream end")

	// One bulk request of a whole window.
	require.Equal(t, 1, gw.callCount())
	req := gw.call(0)
	assert.Equal(t, 50, req.Size)
	assert.Nil(t, req.Cursor)
}

func TestRefillPagesAreDenseAndOrdered(t *testing.T) {
	gw := newMockGateway(120)
	sched, cache, _ := newTestScheduler(gw, 10)

	require.NoError(t, sched.Refill(context.Background(), 1))

	for p := 1; p <= 5; p++ {
		page, ok := cache.Get(p)
		require.True(t, ok, "window must have no gaps")
		require.Len(t, page.Items, 10)
		if p > 1 {
			prev, _ := cache.EndCursor(p - 1)
			for _, item := range page.Items {
				assert.True(t, prev.Follows(item),
					"every item of page %d must follow the end cursor of page %d", p, p-1)
			}
		}
	}
}

func TestRefillDetectsExhaustion(t *testing.T) {
	// 12 items at page size 10: the window yields 2 pages, the second short.
	gw := newMockGateway(12)
	sched, cache, window := newTestScheduler(gw, 10)

	require.NoError(t, sched.Refill(context.Background(), 1))

	win, ok := window.Window()
	require.True(t, ok)
	assert.Equal(t, domain.Window{Start: 1, End: 2}, win)

	last, ok := window.KnownLast()
	require.True(t, ok)
	assert.Equal(t, 2, last)

	page2, _ := cache.Get(2)
	assert.Len(t, page2.Items, 2)
}

func TestRefillExhaustionOnExactPageBoundary(t *testing.T) {
	// 30 items at page size 10: 3 full pages, then nothing.
	gw := newMockGateway(30)
	sched, _, window := newTestScheduler(gw, 10)

	require.NoError(t, sched.Refill(context.Background(), 1))

	last, ok := window.KnownLast()
	require.True(t, ok)
	assert.Equal(t, 3, last, "fewer than a full window of pages marks the end")
}

func TestRefillRecentresWithCachedCursor(t *testing.T) {
	gw := newMockGateway(200)
	sched, cache, window := newTestScheduler(gw, 10)

	require.NoError(t, sched.Refill(context.Background(), 1))
	require.NoError(t, sched.Refill(context.Background(), 4))

	win, _ := window.Window()
	assert.Equal(t, domain.Window{Start: 2, End: 6}, win)
	assert.True(t, cache.Has(6))

	// Second refill resumes from the cached end cursor of page 1.
	require.Equal(t, 2, gw.callCount())
	req := gw.call(1)
	require.NotNil(t, req.Cursor)
	page1, _ := cache.Get(1)
	assert.Equal(t, page1.Items[9].DocID, req.Cursor.LastID)
}

func TestRefillBackfillsMissingCursors(t *testing.T) {
	gw := newMockGateway(200)
	sched, cache, _ := newTestScheduler(gw, 10)

	// Cold cache, window centred on page 6: the entry cursor for page 4
	// requires the end cursor of page 3, reconstructed from the start.
	require.NoError(t, sched.Refill(context.Background(), 6))

	require.Equal(t, 2, gw.callCount())

	backfill := gw.call(0)
	assert.Equal(t, 30, backfill.Size, "backfill requests (start-1) x page_size items")
	assert.Nil(t, backfill.Cursor)

	bulk := gw.call(1)
	assert.Equal(t, 50, bulk.Size)
	cursor3, ok := cache.EndCursor(3)
	require.True(t, ok, "backfill populates intermediate pages")
	assert.Equal(t, cursor3, bulk.Cursor)

	for p := 1; p <= 8; p++ {
		assert.True(t, cache.Has(p), "page %d should be cached", p)
	}
}

func TestRefillBeyondStreamEnd(t *testing.T) {
	gw := newMockGateway(15)
	sched, _, window := newTestScheduler(gw, 10)

	// Backfill through page 5 cannot produce a cursor: the stream has
	// only 2 pages.
	err := sched.Refill(context.Background(), 8)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)

	last, ok := window.KnownLast()
	require.True(t, ok)
	assert.Equal(t, 2, last)
}

func TestRefillFailureLeavesStateUntouched(t *testing.T) {
	gw := newMockGateway(120)
	sched, cache, window := newTestScheduler(gw, 10)
	require.NoError(t, sched.Refill(context.Background(), 1))

	gw.setSearchErr(errors.New("connection refused"))
	err := sched.Refill(context.Background(), 4)
	require.Error(t, err)

	// Prior window and cache survive the failed refill.
	win, ok := window.Window()
	require.True(t, ok)
	assert.Equal(t, domain.Window{Start: 1, End: 5}, win)
	assert.Equal(t, 5, cache.Len())
	_, ok = window.KnownLast()
	assert.False(t, ok)
}

func TestRefillRejectsCursorViolation(t *testing.T) {
	cache := NewPageCache()
	window := NewWindowController()
	sched := NewPrefetchScheduler(&unorderedGateway{}, cache, window, domain.Query{Text: "q", PageSize: 10})

	err := sched.Refill(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCursorViolation)
	assert.Equal(t, 0, cache.Len(), "a violating response must not be cached")
}

func TestFetchPageFirstPage(t *testing.T) {
	gw := newMockGateway(25)
	sched, cache, window := newTestScheduler(gw, 10)

	page, err := sched.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Len(t, page.Items, 10)
	assert.True(t, cache.Has(1))

	_, ok := window.KnownLast()
	assert.False(t, ok)
}

func TestFetchPageShortPageMarksEnd(t *testing.T) {
	gw := newMockGateway(12)
	sched, _, window := newTestScheduler(gw, 10)

	_, err := sched.FetchPage(context.Background(), 1)
	require.NoError(t, err)

	page2, err := sched.FetchPage(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, page2.Items, 2)

	last, ok := window.KnownLast()
	require.True(t, ok)
	assert.Equal(t, 2, last)
}

func TestFetchPageEmptyFirstPage(t *testing.T) {
	gw := newMockGateway(0)
	sched, cache, window := newTestScheduler(gw, 10)

	page, err := sched.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.True(t, cache.Has(1), "an empty page 1 is still the current page")

	last, ok := window.KnownLast()
	require.True(t, ok)
	assert.Equal(t, 1, last)
}

func TestFetchPageBeyondStream(t *testing.T) {
	gw := newMockGateway(20)
	sched, cache, window := newTestScheduler(gw, 10)
	require.NoError(t, sched.Refill(context.Background(), 1))

	_, err := sched.FetchPage(context.Background(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
	assert.False(t, cache.Has(3))

	last, ok := window.KnownLast()
	require.True(t, ok)
	assert.Equal(t, 2, last)
}

func TestSchedulerStats(t *testing.T) {
	gw := newMockGateway(42)
	sched, _, _ := newTestScheduler(gw, 10)

	_, err := sched.FetchPage(context.Background(), 1)
	require.NoError(t, err)

	hits, took := sched.Stats()
	assert.Equal(t, 42, hits)
	assert.Equal(t, 3, took)
}

func TestSlicePages(t *testing.T) {
	items := make([]domain.ResultItem, 23)
	pages := slicePages(4, 10, items)

	require.Len(t, pages, 3)
	assert.Equal(t, 4, pages[0].Number)
	assert.Len(t, pages[0].Items, 10)
	assert.Equal(t, 6, pages[2].Number)
	assert.Len(t, pages[2].Items, 3)

	assert.Empty(t, slicePages(1, 10, nil))
}
