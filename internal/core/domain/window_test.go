package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowSpan(t *testing.T) {
	w := Window{Start: 3, End: 7}
	assert.Equal(t, 5, w.Span())
	assert.True(t, w.Full())

	w = Window{Start: 1, End: 2}
	assert.Equal(t, 2, w.Span())
	assert.False(t, w.Full())
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: 2, End: 6}

	assert.True(t, w.Contains(2))
	assert.True(t, w.Contains(4))
	assert.True(t, w.Contains(6))
	assert.False(t, w.Contains(1))
	assert.False(t, w.Contains(7))
}

func TestWindowStart(t *testing.T) {
	assert.Equal(t, 1, WindowStart(1), "window clamps to page 1")
	assert.Equal(t, 1, WindowStart(2))
	assert.Equal(t, 1, WindowStart(3))
	assert.Equal(t, 2, WindowStart(4))
	assert.Equal(t, 8, WindowStart(10))
}

func TestPageShort(t *testing.T) {
	p := Page{Number: 1, Items: make([]ResultItem, 10)}
	assert.False(t, p.Short(10))

	p = Page{Number: 2, Items: make([]ResultItem, 3)}
	assert.True(t, p.Short(10))

	p = Page{Number: 1}
	assert.True(t, p.Short(10), "empty page is short")
}
