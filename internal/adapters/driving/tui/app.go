// Package tui implements the interactive result browser following the
// Elm architecture.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skim-search/skim-cli/internal/adapters/driving/tui/components/input"
	"github.com/skim-search/skim-cli/internal/adapters/driving/tui/components/status"
	"github.com/skim-search/skim-cli/internal/adapters/driving/tui/keymap"
	"github.com/skim-search/skim-cli/internal/adapters/driving/tui/messages"
	"github.com/skim-search/skim-cli/internal/adapters/driving/tui/styles"
	"github.com/skim-search/skim-cli/internal/adapters/driving/tui/views/results"
	"github.com/skim-search/skim-cli/internal/core/domain"
)

// mode identifies which interaction mode is active.
type mode int

const (
	// modeQuery is the query prompt.
	modeQuery mode = iota
	// modeBrowse is paging through results.
	modeBrowse
	// modeJump is the go-to-page prompt.
	modeJump
)

const defaultPageSize = 10

// App is the main TUI application. It implements tea.Model.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	prompt    *input.Prompt
	results   *results.View
	statusbar *status.Bar

	mode     mode
	query    string
	pageSize int

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	pageSize := ports.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    s,
		keymap:    km,
		prompt:    input.NewPrompt(s, "Search:", "Enter search query..."),
		results:   results.NewView(s),
		statusbar: status.NewBar(s, km),
		mode:      modeQuery,
		pageSize:  pageSize,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("skim - ranked search"),
		a.prompt.Init(),
		a.waitForRefill(),
	}
	if q := strings.TrimSpace(a.ports.InitialQuery); q != "" {
		cmds = append(cmds, a.startSearch(q))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.prompt.SetWidth(msg.Width)
		a.results.SetDimensions(msg.Width, msg.Height-4)
		a.statusbar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.SessionStarted:
		if msg.Err != nil {
			a.statusbar.SetError(msg.Err.Error())
			return a, nil
		}
		a.query = msg.Query
		a.enterBrowse(msg.Page)
		return a, nil

	case messages.PageChanged:
		if msg.Err != nil {
			a.statusbar.SetError(friendlyError(msg.Err))
			a.syncStatus()
			return a, nil
		}
		a.enterBrowse(msg.Page)
		return a, nil

	case messages.WindowRefreshed:
		// Background prefetch settled: window bounds, last-page
		// knowledge or notices may have moved.
		a.syncStatus()
		return a, a.waitForRefill()

	case messages.Quit:
		return a, tea.Quit
	}

	if a.promptActive() {
		var cmd tea.Cmd
		a.prompt, cmd = a.prompt.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleKeyMsg processes keyboard input by mode.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeQuery:
		return a.handleQueryKey(msg)
	case modeJump:
		return a.handleJumpKey(msg)
	case modeBrowse:
		return a.handleBrowseKey(msg)
	}
	return a, nil
}

func (a *App) handleQueryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Back to browsing if a session already exists.
		if a.results.Page() != nil {
			a.setMode(modeBrowse)
		}
		return a, nil
	case tea.KeyEnter:
		query := strings.TrimSpace(a.prompt.Value())
		if query == "" {
			return a, nil
		}
		a.statusbar.SetError("")
		return a, a.startSearch(query)
	default:
	}

	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return a, cmd
}

func (a *App) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.setMode(modeBrowse)
		return a, nil
	case tea.KeyEnter:
		target, err := strconv.Atoi(strings.TrimSpace(a.prompt.Value()))
		if err != nil {
			a.statusbar.SetError("not a page number")
			return a, nil
		}
		a.statusbar.SetError("")
		a.setMode(modeBrowse)
		return a, a.navigate(target)
	default:
	}

	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return a, cmd
}

func (a *App) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(keyStr, a.keymap.NextPage):
		if !a.ports.Session.CanAdvance() {
			return a, nil
		}
		return a, a.next()

	case keymap.Matches(keyStr, a.keymap.PrevPage):
		if !a.ports.Session.CanRetreat() {
			return a, nil
		}
		return a, a.prev()

	case keymap.Matches(keyStr, a.keymap.Jump):
		a.preparePrompt("Go to page:", "page number")
		a.setMode(modeJump)
		return a, a.prompt.Focus()

	case keymap.Matches(keyStr, a.keymap.NewSearch):
		a.preparePrompt("Search:", "Enter search query...")
		a.setMode(modeQuery)
		return a, a.prompt.Focus()

	case keymap.Matches(keyStr, a.keymap.Up):
		a.results.MoveUp()
		return a, nil

	case keymap.Matches(keyStr, a.keymap.Down):
		a.results.MoveDown()
		return a, nil
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	var sections []string

	sections = append(sections, a.styles.Title.Render("skim"))

	switch a.mode {
	case modeQuery:
		sections = append(sections, "", a.prompt.View())
		if a.results.Page() != nil {
			sections = append(sections, "", a.results.View())
		}
	case modeJump:
		sections = append(sections, "", a.results.View(), "", a.prompt.View())
	case modeBrowse:
		sections = append(sections, "", a.results.View())
	}

	sections = append(sections, "", a.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// startSearch begins a session for query.
func (a *App) startSearch(query string) tea.Cmd {
	return func() tea.Msg {
		page, err := a.ports.Session.Start(a.ctx, query, nil, a.pageSize)
		return messages.SessionStarted{Query: query, Page: page, Err: err}
	}
}

// navigate jumps to an absolute page number.
func (a *App) navigate(target int) tea.Cmd {
	return func() tea.Msg {
		page, err := a.ports.Session.Navigate(a.ctx, target)
		return messages.PageChanged{Page: page, Err: err}
	}
}

// next moves one page forward.
func (a *App) next() tea.Cmd {
	return func() tea.Msg {
		page, err := a.ports.Session.Next(a.ctx)
		return messages.PageChanged{Page: page, Err: err}
	}
}

// prev moves one page back.
func (a *App) prev() tea.Cmd {
	return func() tea.Msg {
		page, err := a.ports.Session.Prev(a.ctx)
		return messages.PageChanged{Page: page, Err: err}
	}
}

// waitForRefill blocks on the session's update channel and re-arms
// itself after every signal.
func (a *App) waitForRefill() tea.Cmd {
	return func() tea.Msg {
		<-a.ports.Session.Updates()
		return messages.WindowRefreshed{}
	}
}

// enterBrowse shows a freshly fetched page.
func (a *App) enterBrowse(page *domain.Page) {
	a.results.SetPage(page, a.pageSize)
	a.statusbar.SetError("")
	a.setMode(modeBrowse)
	a.syncStatus()
}

// syncStatus pulls position, window and notices from the session.
func (a *App) syncStatus() {
	sess := a.ports.Session

	last, hasLast := sess.KnownLastPage()
	a.statusbar.SetPosition(sess.CurrentPage(), last, hasLast)
	window, ok := sess.Window()
	a.statusbar.SetWindow(window, ok)
	a.statusbar.SetStats(sess.TotalHits(), sess.TookMS())

	notices := sess.Notices()
	if len(notices) > 0 {
		a.statusbar.SetNotice(notices[len(notices)-1])
	} else {
		a.statusbar.SetNotice("")
	}
}

// preparePrompt relabels and clears the shared prompt.
func (a *App) preparePrompt(label, placeholder string) {
	a.prompt.SetLabel(label)
	a.prompt.SetPlaceholder(placeholder)
	a.prompt.Reset()
}

// setMode switches interaction mode and keeps the prompt focus and
// status hints in step.
func (a *App) setMode(m mode) {
	a.mode = m
	if a.promptActiveIn(m) {
		a.statusbar.SetPrompting(true)
	} else {
		a.statusbar.SetPrompting(false)
		a.prompt.Blur()
	}
}

// promptActive reports whether the prompt owns the keyboard.
func (a *App) promptActive() bool {
	return a.promptActiveIn(a.mode)
}

func (a *App) promptActiveIn(m mode) bool {
	return m == modeQuery || m == modeJump
}

// Mode exposes the interaction mode for tests.
func (a *App) Mode() int {
	return int(a.mode)
}

// friendlyError maps domain errors to short user-facing messages.
func friendlyError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrPageOutOfRange):
		return "no such page"
	case errors.Is(err, domain.ErrGatewayUnavailable):
		return "backend unreachable"
	case errors.Is(err, domain.ErrNoActiveSession):
		return "search first"
	default:
		return err.Error()
	}
}
