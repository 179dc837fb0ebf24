// Package status provides the status bar for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/skim-search/skim-cli/internal/adapters/driving/tui/keymap"
	"github.com/skim-search/skim-cli/internal/adapters/driving/tui/styles"
	"github.com/skim-search/skim-cli/internal/core/domain"
)

// Bar displays pagination position, fetch stats and keybinding hints.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	current   int
	lastPage  int
	hasLast   bool
	window    domain.Window
	hasWindow bool
	totalHits int
	tookMS    int
	notice    string
	errMsg    string
	prompting bool
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders position, stats and any pending notice.
func (b *Bar) renderLeft() string {
	if b.errMsg != "" {
		return b.styles.Error.Render("Error: " + b.errMsg)
	}

	if b.current == 0 {
		return b.styles.Muted.Render("Ready")
	}

	position := fmt.Sprintf("Page %d", b.current)
	if b.hasLast {
		position = fmt.Sprintf("Page %d of %d", b.current, b.lastPage)
	}

	parts := []string{b.styles.Normal.Render(position)}
	parts = append(parts, b.styles.Muted.Render(
		fmt.Sprintf("%d hits · %d ms", b.totalHits, b.tookMS),
	))
	if b.hasWindow {
		parts = append(parts, b.styles.Muted.Render(
			fmt.Sprintf("cached %d–%d", b.window.Start, b.window.End),
		))
	}
	if b.notice != "" {
		parts = append(parts, b.styles.Warning.Render("⚠ "+b.notice))
	}

	return strings.Join(parts, "  ")
}

// renderRight renders keybinding hints.
func (b *Bar) renderRight() string {
	var bindings []key.Binding
	if b.prompting {
		bindings = b.keymap.PromptHelp()
	} else {
		bindings = b.keymap.BrowseHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetPosition sets the current page and, when known, the last page.
func (b *Bar) SetPosition(current, lastPage int, hasLast bool) {
	b.current = current
	b.lastPage = lastPage
	b.hasLast = hasLast
}

// SetWindow sets the committed prefetch window.
func (b *Bar) SetWindow(w domain.Window, ok bool) {
	b.window = w
	b.hasWindow = ok
}

// SetStats sets the backend's total hits and latency.
func (b *Bar) SetStats(totalHits, tookMS int) {
	b.totalHits = totalHits
	b.tookMS = tookMS
}

// SetNotice shows an advisory message, e.g. a failed background prefetch.
func (b *Bar) SetNotice(notice string) {
	b.notice = notice
}

// SetError shows an error message; pass "" to clear it.
func (b *Bar) SetError(msg string) {
	b.errMsg = msg
}

// Error returns the current error message.
func (b *Bar) Error() string {
	return b.errMsg
}

// SetPrompting switches the hint set between browse and prompt modes.
func (b *Bar) SetPrompting(prompting bool) {
	b.prompting = prompting
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Current returns the displayed current page.
func (b *Bar) Current() int {
	return b.current
}
