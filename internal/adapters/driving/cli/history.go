package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skim-search/skim-cli/internal/adapters/driven/storage/sqlite"
	"github.com/skim-search/skim-cli/internal/core/ports/driven"
)

var historyLimit int

// historyStore is opened lazily; tests pre-wire their own.
var historyStore driven.HistoryStore

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded searches",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to show")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

// openHistory returns the shared history store, opening the default
// database on first use.
func openHistory() (driven.HistoryStore, error) {
	if historyStore != nil {
		return historyStore, nil
	}
	store, err := sqlite.NewHistoryStore("")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	historyStore = store
	return historyStore, nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}

	entries, err := store.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No searches recorded.")
		return nil
	}

	for _, entry := range entries {
		cmd.Printf("  %s  %-40q  %d hits\n",
			entry.SearchedAt.Local().Format("2006-01-02 15:04"),
			entry.Query,
			entry.TotalHits,
		)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	if err := store.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	cmd.Println("History cleared.")
	return nil
}
