package results

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skim-search/skim-cli/internal/core/domain"
)

func testPage(number, size, count int) *domain.Page {
	items := make([]domain.ResultItem, count)
	for i := range items {
		items[i] = domain.ResultItem{
			DocID:   fmt.Sprintf("doc-%02d", i+1),
			Title:   fmt.Sprintf("Result %d", i+1),
			Snippet: "a snippet",
			Score:   float64(count - i),
		}
	}
	return &domain.Page{Number: number, Items: items}
}

func TestViewBeforeSearch(t *testing.T) {
	v := NewView(nil)
	assert.Contains(t, v.View(), "No search yet")
}

func TestViewEmptyPage(t *testing.T) {
	v := NewView(nil)
	v.SetPage(&domain.Page{Number: 1}, 10)
	assert.Contains(t, v.View(), "No results found")
}

func TestRanksContinueAcrossPages(t *testing.T) {
	v := NewView(nil)
	v.SetPage(testPage(3, 10, 10), 10)

	view := v.View()
	assert.Contains(t, view, " 21.", "page 3 at size 10 starts at rank 21")
	assert.Contains(t, view, " 30.")
	assert.NotContains(t, view, " 31.")
}

func TestSelectionClampsToPage(t *testing.T) {
	v := NewView(nil)
	v.SetPage(testPage(1, 10, 3), 10)

	v.MoveUp()
	assert.Equal(t, 0, v.SelectedIndex())

	for i := 0; i < 10; i++ {
		v.MoveDown()
	}
	assert.Equal(t, 2, v.SelectedIndex())

	require.NotNil(t, v.Selected())
	assert.Equal(t, "doc-03", v.Selected().DocID)
}

func TestSetPageResetsSelection(t *testing.T) {
	v := NewView(nil)
	v.SetPage(testPage(1, 10, 5), 10)
	v.MoveDown()
	v.MoveDown()

	v.SetPage(testPage(2, 10, 5), 10)
	assert.Equal(t, 0, v.SelectedIndex())
}

func TestSelectedNilOnEmptyPage(t *testing.T) {
	v := NewView(nil)
	v.SetPage(&domain.Page{Number: 1}, 10)
	assert.Nil(t, v.Selected())
}
