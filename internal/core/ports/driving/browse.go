package driving

import (
	"context"

	"github.com/skim-search/skim-cli/internal/core/domain"
)

// BrowseSession lets an external actor page through ranked results.
//
// A session is bound to one query, filter set and page size. Starting a
// new query or changing the page size discards all session state; there
// is no partial reset. Navigation within the prefetched window returns
// instantly from cache; navigation outside it fetches synchronously.
type BrowseSession interface {
	// Start begins a new session: discards prior state, fetches page 1
	// synchronously and schedules a background window prefetch.
	Start(ctx context.Context, query string, filters *domain.SearchFilters, pageSize int) (*domain.Page, error)

	// Navigate moves to target. Cache hits return without a network
	// wait; misses trigger a synchronous single-page fetch with cursor
	// backfill. Targets before page 1 or beyond the known last page
	// return domain.ErrPageOutOfRange and leave state untouched.
	Navigate(ctx context.Context, target int) (*domain.Page, error)

	// Next navigates one page forward.
	Next(ctx context.Context) (*domain.Page, error)

	// Prev navigates one page back.
	Prev(ctx context.Context) (*domain.Page, error)

	// ChangePageSize restarts the session with the same query and
	// filters at a new page size. Equivalent to a fresh Start.
	ChangePageSize(ctx context.Context, size int) (*domain.Page, error)

	// Current returns the currently displayed page, if any.
	Current() (*domain.Page, bool)

	// CurrentPage returns the current page number, 0 before Start.
	CurrentPage() int

	// Window returns the active prefetch window, if one is committed.
	Window() (domain.Window, bool)

	// CanAdvance reports whether a forward-navigation control should
	// be offered. It is an optimistic hint, not a fetch guarantee.
	CanAdvance() bool

	// CanRetreat reports whether backward navigation is possible.
	CanRetreat() bool

	// KnownLastPage returns the proven final page number, once the
	// stream has been observed to end.
	KnownLastPage() (int, bool)

	// TotalHits returns the backend's latest total-hits hint.
	TotalHits() int

	// TookMS returns the backend-reported time of the latest fetch.
	TookMS() int

	// Notices returns advisory messages from background prefetches.
	// Background failures never disturb rendered pages; they only
	// surface here.
	Notices() []string

	// Updates signals that a background prefetch settled. The channel
	// never blocks producers; coalesced signals are acceptable.
	Updates() <-chan struct{}
}
