package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skim-search/skim-cli/internal/core/domain"
	"github.com/skim-search/skim-cli/internal/core/ports/driven"
)

var (
	searchPage   int
	searchSize   int
	searchJSON   bool
	searchCursor string
	searchLang   string
	searchField  string
	searchFrom   string
	searchTo     string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a one-shot ranked search",
	Long: `Searches the ranking backend and prints one page of results.

Pages are addressed with keyset cursors, so --page walks the ranked
stream from the start rather than jumping by offset. Each page of
output includes a resume cursor; pass it back with --cursor to fetch
the following page without re-reading earlier ones.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "page number to display")
	searchCmd.Flags().IntVarP(&searchSize, "size", "n", 0, "results per page (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchCursor, "cursor", "", "resume cursor from a previous page")
	searchCmd.Flags().StringVar(&searchLang, "lang", "", "filter by language code")
	searchCmd.Flags().StringVar(&searchField, "field", "", "restrict matching to a field (title or body)")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "only documents at or after this RFC 3339 timestamp")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "only documents at or before this RFC 3339 timestamp")
	rootCmd.AddCommand(searchCmd)
}

// searchOutput is the JSON shape of one page of results.
type searchOutput struct {
	Query      string              `json:"query"`
	Page       int                 `json:"page,omitempty"`
	TotalHits  int                 `json:"total_hits"`
	TookMS     int                 `json:"took_ms"`
	Results    []domain.ResultItem `json:"results"`
	NextCursor string              `json:"next_cursor,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if gateway == nil {
		return errors.New("ranking gateway not configured")
	}

	filters, err := buildFilters()
	if err != nil {
		return err
	}

	size := searchSize
	if size <= 0 {
		size = configStore.GetInt("search.page_size", 10)
	}

	var out searchOutput
	if searchCursor != "" {
		out, err = searchFromCursor(cmd, query, filters, size)
	} else {
		out, err = searchByPage(cmd, query, filters, size)
	}
	if err != nil {
		return err
	}

	recordSearch(cmd, query, size, out.TotalHits)

	if searchJSON {
		return outputSearchJSON(cmd, out)
	}
	return outputSearchTable(cmd, out)
}

// searchByPage drives a browse session to the requested page, walking
// the ranked stream from the start.
func searchByPage(cmd *cobra.Command, query string, filters *domain.SearchFilters, size int) (searchOutput, error) {
	if session == nil {
		return searchOutput{}, errors.New("search session not configured")
	}

	ctx := cmd.Context()
	page, err := session.Start(ctx, query, filters, size)
	if err != nil {
		return searchOutput{}, fmt.Errorf("search failed: %w", err)
	}

	if searchPage > 1 {
		page, err = session.Navigate(ctx, searchPage)
		if err != nil {
			if errors.Is(err, domain.ErrPageOutOfRange) {
				if last, ok := session.KnownLastPage(); ok {
					return searchOutput{}, fmt.Errorf("page %d is past the end (last page is %d)", searchPage, last)
				}
			}
			return searchOutput{}, fmt.Errorf("fetching page %d: %w", searchPage, err)
		}
	}

	out := searchOutput{
		Query:     query,
		Page:      page.Number,
		TotalHits: session.TotalHits(),
		TookMS:    session.TookMS(),
		Results:   page.Items,
	}
	if cursor := domain.DeriveEndCursor(page.Items); cursor != nil {
		out.NextCursor = cursor.Encode()
	}
	return out, nil
}

// searchFromCursor fetches a single page directly after the supplied
// cursor, bypassing session state entirely.
func searchFromCursor(cmd *cobra.Command, query string, filters *domain.SearchFilters, size int) (searchOutput, error) {
	cursor, err := domain.DecodeCursor(searchCursor)
	if err != nil {
		return searchOutput{}, fmt.Errorf("invalid --cursor: %w", err)
	}

	resp, err := gateway.Search(cmd.Context(), driven.PageRequest{
		Query:   query,
		Size:    size,
		Cursor:  cursor,
		Filters: filters,
	})
	if err != nil {
		return searchOutput{}, fmt.Errorf("search failed: %w", err)
	}
	if err := domain.ValidateOrder(cursor, resp.Results); err != nil {
		return searchOutput{}, fmt.Errorf("backend returned a mis-ordered page: %w", err)
	}

	out := searchOutput{
		Query:     query,
		TotalHits: resp.TotalHits,
		TookMS:    resp.TookMS,
		Results:   resp.Results,
	}
	if next := domain.DeriveEndCursor(resp.Results); next != nil {
		out.NextCursor = next.Encode()
	}
	return out, nil
}

// buildFilters assembles SearchFilters from the flag set, nil when no
// filter flags were given.
func buildFilters() (*domain.SearchFilters, error) {
	if searchLang == "" && searchField == "" && searchFrom == "" && searchTo == "" {
		return nil, nil
	}

	switch searchField {
	case "", domain.FieldTitle, domain.FieldBody:
	default:
		return nil, fmt.Errorf("invalid --field %q: must be title or body", searchField)
	}

	return &domain.SearchFilters{
		Lang:     searchLang,
		TimeFrom: searchFrom,
		TimeTo:   searchTo,
		Field:    searchField,
	}, nil
}

// recordSearch appends to local history, best effort.
func recordSearch(cmd *cobra.Command, query string, size, totalHits int) {
	if !configStore.GetBool("history.enabled", true) {
		return
	}
	store, err := openHistory()
	if err != nil {
		return
	}
	err = store.RecordSearch(cmd.Context(), &driven.HistoryEntry{
		Query:      query,
		PageSize:   size,
		TotalHits:  totalHits,
		SearchedAt: time.Now(),
	})
	if err != nil {
		cmd.PrintErrf("warning: could not record history: %v\n", err)
	}
}

func outputSearchJSON(cmd *cobra.Command, out searchOutput) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, out searchOutput) error {
	if len(out.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	if out.Page > 0 {
		cmd.Printf("Page %d — %d hits (%d ms)\n", out.Page, out.TotalHits, out.TookMS)
	} else {
		cmd.Printf("%d hits (%d ms)\n", out.TotalHits, out.TookMS)
	}
	cmd.Println()

	for i, item := range out.Results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, item.Title, item.Score)
		if item.URL != "" {
			cmd.Printf("      %s\n", item.URL)
		}
		if item.Snippet != "" {
			cmd.Printf("      %s\n", item.Snippet)
		}
		cmd.Println()
	}

	if out.NextCursor != "" {
		cmd.Printf("Resume cursor: %s\n", out.NextCursor)
	}
	return nil
}
