package domain

// Document is a raw document submitted to the ranking backend for
// indexing. The backend owns tokenisation, scoring and persistence;
// skim only hands documents over.
type Document struct {
	// DocID is the unique identifier for the document.
	DocID string `json:"doc_id"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// Body is the full text content.
	Body string `json:"body"`

	// URL is the original location, if known.
	URL string `json:"url,omitempty"`

	// Timestamp is the document timestamp as an ISO 8601 string.
	Timestamp string `json:"timestamp,omitempty"`

	// Lang is the document language code.
	Lang string `json:"lang"`
}
