package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/skim-search/skim-cli/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Add documents to the backend index",
	Long: `Reads a JSON array of documents and submits it to the ranking
backend for indexing. Pass "-" to read from stdin.

Each document needs at least a doc_id, title and body:

  [{"doc_id": "doc-9", "title": "...", "body": "...", "lang": "en"}]`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if gateway == nil {
		return errors.New("ranking gateway not configured")
	}

	docs, err := readDocuments(cmd, args[0])
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return errors.New("no documents to ingest")
	}

	receipt, err := gateway.Ingest(cmd.Context(), docs)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d of %d documents", receipt.Ingested, len(docs))
	if !receipt.UpdatedIndex {
		cmd.Print(" (index unchanged)")
	}
	cmd.Println()
	cmd.Printf("Index version: %s\n", receipt.IndexVersion)
	return nil
}

// readDocuments parses a JSON document array from path or stdin.
func readDocuments(cmd *cobra.Command, path string) ([]domain.Document, error) {
	var reader io.Reader
	if path == "-" {
		reader = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		reader = f
	}

	var docs []domain.Document
	if err := json.NewDecoder(reader).Decode(&docs); err != nil {
		return nil, fmt.Errorf("parsing documents: %w", err)
	}

	for i, doc := range docs {
		if doc.DocID == "" {
			return nil, fmt.Errorf("document %d has no doc_id", i)
		}
	}
	return docs, nil
}
