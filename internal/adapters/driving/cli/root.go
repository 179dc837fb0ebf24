// Package cli wires the cobra command tree for the skim binary.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skim-search/skim-cli/internal/adapters/driven/config/file"
	"github.com/skim-search/skim-cli/internal/adapters/driven/ranking/httpgw"
	"github.com/skim-search/skim-cli/internal/adapters/driven/ranking/memory"
	"github.com/skim-search/skim-cli/internal/core/ports/driven"
	"github.com/skim-search/skim-cli/internal/core/ports/driving"
	"github.com/skim-search/skim-cli/internal/core/services"
	"github.com/skim-search/skim-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// DefaultBackendURL is used when neither the --backend flag nor the
// config file names a ranking backend.
const DefaultBackendURL = "http://localhost:8000"

var (
	verboseFlag bool
	backendFlag string
	demoFlag    bool
	demoDocs    int
)

// Services the commands run against. Wired by initServices on first
// command execution; tests inject their own.
var (
	configStore driven.ConfigStore
	gateway     driven.RankingGateway
	session     driving.BrowseSession
)

var rootCmd = &cobra.Command{
	Use:   "skim",
	Short: "Page through ranked search results",
	Long: `Skim is a client for ranked-search backends that paginates with
keyset cursors instead of offsets. Around the page you are reading it
keeps a five-page window of prefetched results, so nearby navigation
never waits on the network and never shows a duplicated or skipped
document, even while the index changes underneath.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "ranking backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&demoFlag, "demo", false, "browse a built-in demo corpus instead of a backend")
	rootCmd.PersistentFlags().IntVar(&demoDocs, "demo-docs", 0, "add n synthetic documents to the demo corpus")
}

// initServices builds the default adapters. Already-set services are
// left alone so tests can pre-wire fakes.
func initServices() error {
	if configStore == nil {
		store, err := file.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		configStore = store
	}

	if gateway == nil {
		if demoFlag {
			docs := memory.SeedDocuments()
			if demoDocs > 0 {
				docs = append(docs, memory.GenerateDocuments(demoDocs)...)
			}
			gateway = memory.NewGateway(docs)
		} else {
			url := backendFlag
			if url == "" {
				url = configStore.GetString("backend.url", DefaultBackendURL)
			}
			logger.Debug("Using ranking backend %s", url)

			client := httpgw.NewClient(url)
			if secs := configStore.GetInt("gateway.timeout_seconds", 0); secs > 0 {
				client.SetTimeout(time.Duration(secs) * time.Second)
			}
			if rps := configStore.GetInt("gateway.requests_per_second", 0); rps > 0 {
				client.SetRateLimit(float64(rps))
			}
			gateway = client
		}
	}

	if session == nil {
		session = services.NewSession(gateway)
	}

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
