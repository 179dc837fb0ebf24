package domain

// Searchable fields for field-restricted queries.
const (
	// FieldTitle restricts matching to document titles.
	FieldTitle = "title"

	// FieldBody restricts matching to document bodies.
	FieldBody = "body"
)

// SearchFilters narrows a query to a language, time range or field.
// A nil filter set matches everything.
type SearchFilters struct {
	// Lang restricts results to a language code.
	Lang string `json:"lang,omitempty"`

	// TimeFrom is the inclusive lower timestamp bound (ISO 8601).
	TimeFrom string `json:"time_from,omitempty"`

	// TimeTo is the inclusive upper timestamp bound (ISO 8601).
	TimeTo string `json:"time_to,omitempty"`

	// Field restricts matching to FieldTitle or FieldBody.
	Field string `json:"field,omitempty"`
}

// Query identifies one search session: the query text, the filters and
// the page size. Changing any of the three discards the session
// wholesale, because page numbering is only meaningful at a fixed page
// size over a fixed query.
type Query struct {
	// Text is the raw query string.
	Text string

	// Filters optionally narrows the result set.
	Filters *SearchFilters

	// PageSize is the number of results per page.
	PageSize int
}
