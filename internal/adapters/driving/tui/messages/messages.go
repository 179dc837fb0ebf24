// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/skim-search/skim-cli/internal/core/domain"
)

// SessionStarted carries the first page of a new query back to the model.
type SessionStarted struct {
	Query string
	Page  *domain.Page
	Err   error
}

// PageChanged carries the result of a navigation.
type PageChanged struct {
	Page *domain.Page
	Err  error
}

// WindowRefreshed signals that a background prefetch settled. The
// session's window, last-page knowledge or notices may have changed.
type WindowRefreshed struct{}

// Quit signals the application should exit.
type Quit struct{}
