package domain

import (
	"encoding/base64"
	"encoding/json"
)

// Cursor marks the keyset boundary after the last consumed result.
// A nil cursor means "start of the ranked stream".
//
// The ranked order is fixed: score descending, then doc ID ascending
// on ties. The tie-break direction must never vary, otherwise the end
// cursor of a page could re-admit items already returned.
type Cursor struct {
	// LastScore is the score of the last consumed item.
	LastScore float64 `json:"last_score"`

	// LastID is the doc ID of the last consumed item.
	LastID string `json:"last_id"`
}

// RankedBefore reports whether a ranks strictly before b in the total
// order over the stream.
func RankedBefore(a, b ResultItem) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.DocID < b.DocID
}

// Follows reports whether item strictly follows the cursor boundary.
// A nil cursor is followed by every item.
func (c *Cursor) Follows(item ResultItem) bool {
	if c == nil {
		return true
	}
	if item.Score != c.LastScore {
		return item.Score < c.LastScore
	}
	return item.DocID > c.LastID
}

// DeriveEndCursor returns the cursor that resumes the stream after the
// final item of items. Returns nil for an empty slice.
func DeriveEndCursor(items []ResultItem) *Cursor {
	if len(items) == 0 {
		return nil
	}
	last := items[len(items)-1]
	return &Cursor{LastScore: last.Score, LastID: last.DocID}
}

// ValidateOrder checks a gateway response against the keyset contract:
// every item must strictly follow cursor, and the items must be
// strictly ordered among themselves. A violation means the response
// cannot be cached safely and is reported as ErrCursorViolation.
func ValidateOrder(cursor *Cursor, items []ResultItem) error {
	prev := cursor
	for i := range items {
		if !prev.Follows(items[i]) {
			return ErrCursorViolation
		}
		prev = &Cursor{LastScore: items[i].Score, LastID: items[i].DocID}
	}
	return nil
}

// Encode serialises the cursor to a base64-encoded JSON string,
// suitable for passing through CLI flags. Returns "" for a nil cursor.
func (c *Cursor) Encode() string {
	if c == nil {
		return ""
	}
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeCursor deserialises a cursor from a base64-encoded JSON string.
// Returns nil (start of stream) for an empty input.
func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var cursor Cursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, ErrInvalidCursor
	}

	return &cursor, nil
}
