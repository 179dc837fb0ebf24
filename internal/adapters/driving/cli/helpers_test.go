package cli

import (
	"bytes"
	"testing"

	"github.com/skim-search/skim-cli/internal/adapters/driven/config/file"
	"github.com/skim-search/skim-cli/internal/adapters/driven/ranking/memory"
	"github.com/skim-search/skim-cli/internal/adapters/driven/storage/sqlite"
	"github.com/skim-search/skim-cli/internal/core/services"
)

// setupTestServices wires the commands to an in-memory gateway over a
// synthetic corpus plus temp-dir config and history stores. The
// returned cleanup restores the previous wiring and flag defaults.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	oldConfig := configStore
	oldGateway := gateway
	oldSession := session
	oldHistory := historyStore

	cfg, err := file.NewConfigStore(t.TempDir())
	if err != nil {
		t.Fatalf("config store: %v", err)
	}
	history, err := sqlite.NewHistoryStore(t.TempDir())
	if err != nil {
		t.Fatalf("history store: %v", err)
	}

	docs := memory.SeedDocuments()
	docs = append(docs, memory.GenerateDocuments(25)...)

	configStore = cfg
	gateway = memory.NewGateway(docs)
	session = services.NewSession(gateway)
	historyStore = history

	return func() {
		history.Close()
		configStore = oldConfig
		gateway = oldGateway
		session = oldSession
		historyStore = oldHistory
		resetFlags()
	}
}

// resetFlags restores flag-bound package vars between tests.
func resetFlags() {
	searchPage = 1
	searchSize = 0
	searchJSON = false
	searchCursor = ""
	searchLang = ""
	searchField = ""
	searchFrom = ""
	searchTo = ""
	healthJSON = false
	historyLimit = 20
	browseSize = 0
	verboseFlag = false
	backendFlag = ""
	demoFlag = false
	demoDocs = 0
}

// execute runs the root command with args and captures output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
