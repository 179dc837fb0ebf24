package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrPageOutOfRange indicates a navigation target before page 1 or
	// beyond the known last page of the stream.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrInvalidCursor indicates a cursor that could not be decoded.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrCursorViolation indicates a gateway response that breaks the
	// keyset ordering contract. Such responses must never be cached,
	// since they would corrupt resumption for all later pages.
	ErrCursorViolation = errors.New("response violates cursor order")

	// ErrGatewayUnavailable indicates the ranking backend could not be
	// reached or returned a non-success response.
	ErrGatewayUnavailable = errors.New("ranking backend unavailable")

	// ErrNoActiveSession indicates navigation before any query started.
	ErrNoActiveSession = errors.New("no active search session")

	// ErrEmptyQuery indicates a query with no text.
	ErrEmptyQuery = errors.New("empty query")

	// ErrInvalidPageSize indicates a non-positive page size.
	ErrInvalidPageSize = errors.New("invalid page size")
)
