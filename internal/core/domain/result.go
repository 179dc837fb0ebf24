package domain

// ResultItem is a single ranked hit returned by the ranking backend.
// Items are immutable once returned.
type ResultItem struct {
	// DocID uniquely identifies the document within a response.
	DocID string `json:"doc_id"`

	// Title is the human-readable document title.
	Title string `json:"title"`

	// Snippet is a short extract around the matched terms.
	Snippet string `json:"snippet"`

	// Score is the relevance score assigned by the backend.
	Score float64 `json:"score"`

	// URL is the original document location, if known.
	URL string `json:"url,omitempty"`

	// Timestamp is the document timestamp as an ISO 8601 string.
	Timestamp string `json:"timestamp,omitempty"`

	// Lang is the document language code.
	Lang string `json:"lang"`
}

// Page is a numbered slice of the ranked stream.
// Page numbers are 1-based. Only the final page of a stream may hold
// fewer items than the session page size.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Items are the ranked results on this page, in stream order.
	Items []ResultItem
}

// Short reports whether the page holds fewer items than size,
// which marks it as the final page of the ranked stream.
func (p Page) Short(size int) bool {
	return len(p.Items) < size
}
