package domain

// WindowSpan is the number of pages a prefetch window covers.
const WindowSpan = 5

// Window is the contiguous run of page numbers currently cached and
// available for instant navigation. Both bounds are inclusive.
type Window struct {
	// Start is the first page number in the window.
	Start int

	// End is the last page number in the window.
	End int
}

// Span returns the number of pages the window covers.
func (w Window) Span() int {
	return w.End - w.Start + 1
}

// Contains reports whether page falls inside the window.
func (w Window) Contains(page int) bool {
	return page >= w.Start && page <= w.End
}

// Full reports whether the window spans the maximum number of pages.
func (w Window) Full() bool {
	return w.Span() == WindowSpan
}

// WindowStart returns the start page for a window centred on page.
// The window is shifted right when the centre is near the stream start.
func WindowStart(centre int) int {
	start := centre - WindowSpan/2
	if start < 1 {
		start = 1
	}
	return start
}
