package services

import (
	"sync"

	"github.com/skim-search/skim-cli/internal/core/domain"
)

// PageCache memoises fetched pages and their end cursors for one
// session. Entries are only ever discarded wholesale: a session that
// changes query, filters or page size drops the entire cache.
//
// Put is idempotent and overwrites silently. Any valid fetch of a page
// under the same query is interchangeable, so a later write for the
// same page number is always safe.
type PageCache struct {
	mu      sync.RWMutex
	pages   map[int]domain.Page
	cursors map[int]*domain.Cursor
}

// NewPageCache creates an empty page cache.
func NewPageCache() *PageCache {
	return &PageCache{
		pages:   make(map[int]domain.Page),
		cursors: make(map[int]*domain.Cursor),
	}
}

// Get retrieves a cached page by number.
func (c *PageCache) Get(number int) (domain.Page, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	page, ok := c.pages[number]
	return page, ok
}

// Has reports whether a page is cached.
func (c *PageCache) Has(number int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.pages[number]
	return ok
}

// Put stores a page and derives its end cursor.
func (c *PageCache) Put(page domain.Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(page)
}

// PutBatch stores pages under a single lock acquisition, so readers
// never observe a partially applied prefetch batch.
func (c *PageCache) PutBatch(pages []domain.Page) {
	if len(pages) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, page := range pages {
		c.put(page)
	}
}

// put stores a single page (caller must hold the write lock).
func (c *PageCache) put(page domain.Page) {
	c.pages[page.Number] = page
	if cursor := domain.DeriveEndCursor(page.Items); cursor != nil {
		c.cursors[page.Number] = cursor
	}
}

// EndCursor retrieves the cursor that resumes the stream after the
// given page. Absent for uncached and for empty pages.
func (c *PageCache) EndCursor(number int) (*domain.Cursor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cursor, ok := c.cursors[number]
	return cursor, ok
}

// Len returns the number of cached pages.
func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}

// Clear discards all pages and cursors. Used only by full session
// reset.
func (c *PageCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = make(map[int]domain.Page)
	c.cursors = make(map[int]*domain.Cursor)
}
