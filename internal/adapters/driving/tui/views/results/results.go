// Package results renders one page of ranked results.
package results

import (
	"fmt"
	"strings"

	"github.com/skim-search/skim-cli/internal/adapters/driving/tui/styles"
	"github.com/skim-search/skim-cli/internal/core/domain"
)

// View displays the items of the current page with a movable selection.
type View struct {
	styles *styles.Styles

	page     *domain.Page
	pageSize int
	selected int
	width    int
	height   int
}

// NewView creates a results view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// SetPage replaces the displayed page and resets the selection.
func (v *View) SetPage(page *domain.Page, pageSize int) {
	v.page = page
	v.pageSize = pageSize
	v.selected = 0
}

// Page returns the displayed page, nil before the first search.
func (v *View) Page() *domain.Page {
	return v.page
}

// MoveUp moves the selection up within the page.
func (v *View) MoveUp() {
	if v.selected > 0 {
		v.selected--
	}
}

// MoveDown moves the selection down within the page.
func (v *View) MoveDown() {
	if v.page != nil && v.selected < len(v.page.Items)-1 {
		v.selected++
	}
}

// Selected returns the highlighted item, nil on an empty page.
func (v *View) Selected() *domain.ResultItem {
	if v.page == nil || len(v.page.Items) == 0 {
		return nil
	}
	return &v.page.Items[v.selected]
}

// SelectedIndex returns the highlighted index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SetDimensions sets the rendering area.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// View renders the page.
func (v *View) View() string {
	if v.page == nil {
		return v.styles.Muted.Render("No search yet.")
	}
	if len(v.page.Items) == 0 {
		return v.styles.Muted.Render("No results found.")
	}

	var sb strings.Builder
	offset := (v.page.Number-1)*v.pageSize + 1

	for i, item := range v.page.Items {
		rank := fmt.Sprintf("%3d.", offset+i)
		title := item.Title
		if title == "" {
			title = item.DocID
		}
		score := v.styles.Score.Render(fmt.Sprintf("%.2f", item.Score))

		line := fmt.Sprintf("%s %s  %s", rank, title, score)
		if i == v.selected {
			sb.WriteString(v.styles.Selected.Render(line))
		} else {
			sb.WriteString(v.styles.Normal.Render(line))
		}
		sb.WriteString("\n")

		if i == v.selected && item.Snippet != "" {
			sb.WriteString(v.styles.Muted.Render("     " + truncate(item.Snippet, v.width-6)))
			sb.WriteString("\n")
		}
		if i == v.selected && item.URL != "" {
			sb.WriteString(v.styles.Muted.Render("     " + item.URL))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if n <= 3 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
