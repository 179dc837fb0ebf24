package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/skim-search/skim-cli/internal/adapters/driving/tui"
)

var browseSize int

var browseCmd = &cobra.Command{
	Use:   "browse [query]",
	Short: "Browse results interactively",
	Long: `Launch the interactive terminal UI and page through ranked results.

The five pages around the one you are reading are prefetched in the
background, so nearby navigation is instant. Jumps outside that window
fetch on demand.

Controls:
  →/n, ←/p - Next / previous page
  ↑/k, ↓/j - Move within the page
  g        - Go to page
  /        - New search
  q        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().IntVarP(&browseSize, "size", "n", 0, "results per page (default from config)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	// Panic recovery keeps stack traces visible outside the alt screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if session == nil {
		return errors.New("search session not configured")
	}

	size := browseSize
	if size <= 0 {
		size = configStore.GetInt("search.page_size", 10)
	}

	ports := &tui.Ports{
		Session:  session,
		PageSize: size,
	}
	if len(args) == 1 {
		ports.InitialQuery = args[0]
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
