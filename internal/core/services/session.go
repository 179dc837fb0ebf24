package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/skim-search/skim-cli/internal/core/domain"
	"github.com/skim-search/skim-cli/internal/core/ports/driven"
	"github.com/skim-search/skim-cli/internal/core/ports/driving"
	"github.com/skim-search/skim-cli/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.BrowseSession = (*Session)(nil)

// Session is the aggregate root of the pagination core. It combines
// the page cache, the window controller and the prefetch scheduler for
// the active query and serialises foreground and background access to
// them.
//
// A new query, filter set or page size swaps in a completely fresh
// state object. In-flight background refills keep writing into the
// discarded object, which nothing reads any more, so superseded work
// can complete safely without generation counters or cancellation.
type Session struct {
	gateway driven.RankingGateway

	mu    sync.Mutex
	state *sessionState

	updates chan struct{}
	id      string
}

// sessionState holds everything scoped to one query. It is replaced,
// never partially reset.
type sessionState struct {
	query    domain.Query
	cache    *PageCache
	window   *WindowController
	prefetch *PrefetchScheduler

	mu      sync.Mutex
	notices []string
}

// newSessionState builds the per-query component set.
func newSessionState(gateway driven.RankingGateway, query domain.Query) *sessionState {
	cache := NewPageCache()
	window := NewWindowController()
	return &sessionState{
		query:    query,
		cache:    cache,
		window:   window,
		prefetch: NewPrefetchScheduler(gateway, cache, window, query),
	}
}

// addNotice records an advisory message from a background prefetch.
func (st *sessionState) addNotice(msg string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.notices = append(st.notices, msg)
}

// NewSession creates a session bound to a ranking gateway. The session
// is idle until Start.
func NewSession(gateway driven.RankingGateway) *Session {
	return &Session{
		gateway: gateway,
		updates: make(chan struct{}, 1),
		id:      uuid.NewString(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Start begins a new session for query. Prior state is discarded only
// after page 1 has been fetched successfully, so a failed start leaves
// the previous session browsable.
func (s *Session) Start(
	ctx context.Context, query string, filters *domain.SearchFilters, pageSize int,
) (*domain.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	if pageSize <= 0 {
		return nil, domain.ErrInvalidPageSize
	}

	logger.Section("Search Session")
	logger.Debug("Query: %q, page size: %d", query, pageSize)

	st := newSessionState(s.gateway, domain.Query{
		Text:     query,
		Filters:  filters,
		PageSize: pageSize,
	})

	page, err := st.prefetch.FetchPage(ctx, 1)
	if err != nil {
		return nil, err
	}
	st.window.SetCurrent(1)

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()

	s.scheduleRefill(st, 1)
	return page, nil
}

// Navigate moves to target. Cache hits return immediately; misses
// fetch a single page synchronously with cursor backfill. Either path
// re-centres the prefetch window in the background afterwards.
func (s *Session) Navigate(ctx context.Context, target int) (*domain.Page, error) {
	st := s.currentState()
	if st == nil {
		return nil, domain.ErrNoActiveSession
	}
	if !st.window.Allows(target) {
		return nil, domain.ErrPageOutOfRange
	}

	if page, ok := st.cache.Get(target); ok {
		logger.Debug("Navigate: page %d served from cache", target)
		st.window.SetCurrent(target)
		s.scheduleRefill(st, target)
		return &page, nil
	}

	logger.Debug("Navigate: page %d not cached, fetching", target)
	page, err := st.prefetch.FetchPage(ctx, target)
	if err != nil {
		return nil, err
	}

	st.window.SetCurrent(target)
	s.scheduleRefill(st, target)
	return page, nil
}

// Next navigates one page forward.
func (s *Session) Next(ctx context.Context) (*domain.Page, error) {
	st := s.currentState()
	if st == nil {
		return nil, domain.ErrNoActiveSession
	}
	return s.Navigate(ctx, st.window.Current()+1)
}

// Prev navigates one page back.
func (s *Session) Prev(ctx context.Context) (*domain.Page, error) {
	st := s.currentState()
	if st == nil {
		return nil, domain.ErrNoActiveSession
	}
	return s.Navigate(ctx, st.window.Current()-1)
}

// ChangePageSize restarts the session with the same query and filters
// at a new page size. Page numbering is only meaningful at a fixed
// page size, so nothing carries over.
func (s *Session) ChangePageSize(ctx context.Context, size int) (*domain.Page, error) {
	st := s.currentState()
	if st == nil {
		return nil, domain.ErrNoActiveSession
	}
	return s.Start(ctx, st.query.Text, st.query.Filters, size)
}

// Current returns the currently displayed page, if any.
func (s *Session) Current() (*domain.Page, bool) {
	st := s.currentState()
	if st == nil {
		return nil, false
	}
	page, ok := st.cache.Get(st.window.Current())
	if !ok {
		return nil, false
	}
	return &page, true
}

// CurrentPage returns the current page number, 0 before Start.
func (s *Session) CurrentPage() int {
	st := s.currentState()
	if st == nil {
		return 0
	}
	return st.window.Current()
}

// Window returns the committed prefetch window, if any.
func (s *Session) Window() (domain.Window, bool) {
	st := s.currentState()
	if st == nil {
		return domain.Window{}, false
	}
	return st.window.Window()
}

// CanAdvance reports whether a forward-navigation control should be
// offered.
func (s *Session) CanAdvance() bool {
	st := s.currentState()
	if st == nil {
		return false
	}
	return st.window.CanAdvance(st.cache.Has(st.window.Current() + 1))
}

// CanRetreat reports whether backward navigation is possible.
func (s *Session) CanRetreat() bool {
	st := s.currentState()
	if st == nil {
		return false
	}
	return st.window.CanRetreat()
}

// KnownLastPage returns the proven final page number, once set.
func (s *Session) KnownLastPage() (int, bool) {
	st := s.currentState()
	if st == nil {
		return 0, false
	}
	return st.window.KnownLast()
}

// TotalHits returns the backend's latest total-hits hint.
func (s *Session) TotalHits() int {
	st := s.currentState()
	if st == nil {
		return 0
	}
	hits, _ := st.prefetch.Stats()
	return hits
}

// TookMS returns the backend-reported time of the latest fetch.
func (s *Session) TookMS() int {
	st := s.currentState()
	if st == nil {
		return 0
	}
	_, took := st.prefetch.Stats()
	return took
}

// Notices returns advisory messages recorded by background prefetches
// for the active query.
func (s *Session) Notices() []string {
	st := s.currentState()
	if st == nil {
		return nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	notices := make([]string, len(st.notices))
	copy(notices, st.notices)
	return notices
}

// Updates signals settled background refills. Signals may coalesce.
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

// currentState returns the live state object, nil before Start.
func (s *Session) currentState() *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// scheduleRefill re-centres the prefetch window around centre in the
// background. Failures surface as notices only: the rendered page and
// all cached pages stay untouched. The refill deliberately outlives
// the foreground call's context.
func (s *Session) scheduleRefill(st *sessionState, centre int) {
	go func() {
		if err := st.prefetch.Refill(context.Background(), centre); err != nil {
			logger.Warn("Background refill around page %d failed: %v", centre, err)
			st.addNotice(err.Error())
		}
		s.notify()
	}()
}

// notify signals listeners without ever blocking.
func (s *Session) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}
