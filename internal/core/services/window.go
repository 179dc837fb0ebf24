package services

import (
	"sync"

	"github.com/skim-search/skim-cli/internal/core/domain"
)

// WindowController owns window placement and the navigation state for
// one session: the committed prefetch window, the current page pointer
// and the known-last-page sentinel.
//
// A requested window is an intent, not a promise: the window is only
// committed once a prefetch actually returns data, so its span never
// claims pages the stream cannot provide.
type WindowController struct {
	mu           sync.Mutex
	window       domain.Window
	windowed     bool
	current      int
	knownLast    int
	hasKnownLast bool
}

// NewWindowController creates a controller with no window and no
// current page.
func NewWindowController() *WindowController {
	return &WindowController{}
}

// Commit records a window of produced pages starting at start. A
// refill that produced nothing leaves the previous window in place.
// Later commits supersede earlier ones: last writer wins.
func (w *WindowController) Commit(start, produced int) {
	if produced <= 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.window = domain.Window{Start: start, End: start + produced - 1}
	w.windowed = true
}

// Window returns the committed window, if any.
func (w *WindowController) Window() (domain.Window, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.window, w.windowed
}

// SetCurrent moves the current page pointer.
func (w *WindowController) SetCurrent(page int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = page
}

// Current returns the current page number, 0 before any navigation.
func (w *WindowController) Current() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// MarkExhausted records that the stream ends at page. The sentinel is
// effectively write-once: the smallest observed boundary wins, so a
// late stale refill can never extend a stream already proven shorter.
func (w *WindowController) MarkExhausted(page int) {
	if page < 1 {
		page = 1
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.hasKnownLast && w.knownLast <= page {
		return
	}
	w.knownLast = page
	w.hasKnownLast = true
}

// KnownLast returns the proven final page number, once set.
func (w *WindowController) KnownLast() (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.knownLast, w.hasKnownLast
}

// Allows reports whether target is a permitted navigation target:
// at least page 1 and not beyond the known last page.
func (w *WindowController) Allows(target int) bool {
	if target < 1 {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.hasKnownLast || target <= w.knownLast
}

// CanAdvance reports whether a forward-navigation control should be
// offered. With the stream end known it is exact; otherwise it is an
// optimistic hint: true when the next page is already cached or when
// the committed window is full, meaning the end has not been observed.
func (w *WindowController) CanAdvance(nextCached bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.hasKnownLast {
		return w.current < w.knownLast
	}
	if nextCached {
		return true
	}
	return w.windowed && w.window.Full()
}

// CanRetreat reports whether backward navigation is possible.
func (w *WindowController) CanRetreat() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current > 1
}
