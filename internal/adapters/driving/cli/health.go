package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var healthJSON bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the ranking backend",
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if gateway == nil {
		return errors.New("ranking gateway not configured")
	}

	status, err := gateway.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("backend unhealthy: %w", err)
	}

	if healthJSON {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Status:        %s\n", status.Status)
	cmd.Printf("Documents:     %d\n", status.DocsCount)
	cmd.Printf("Index version: %s\n", status.IndexVersion)
	return nil
}
