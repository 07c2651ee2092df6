// Package ingest implements the import command.
package ingest

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/abnew123/expense-ledger/cmd/root"
	"github.com/abnew123/expense-ledger/internal/logging"
	"github.com/abnew123/expense-ledger/internal/pipeline"
)

// Cmd represents the import command.
var Cmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a bank CSV export into the ledger",
	Long: `Import a bank CSV export. The format is detected from the header (or,
for headerless files, from the content), rows are normalized and
deduplicated against previous imports, and the new rows are committed in
one atomic batch.`,
	Args: cobra.ExactArgs(1),
	Run:  ingestFunc,
}

func ingestFunc(cmd *cobra.Command, args []string) {
	path := args[0]
	root.Log.Infof("Importing %s", path)

	content, err := os.ReadFile(path) // #nosec G304 -- CLI tool takes user-provided file paths
	if err != nil {
		root.Log.Fatalf("Error reading %s: %v", path, err)
	}

	store, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening store: %v", err)
	}
	defer func() { _ = store.Close() }()

	registry, err := root.BuildRegistry()
	if err != nil {
		root.Log.Fatalf("Error loading formats: %v", err)
	}

	p := pipeline.New(store, registry, logging.NewLogrusAdapterFromLogger(root.Log))
	summary, err := p.Ingest(context.Background(), string(content))
	if err != nil {
		root.Log.Fatalf("Import failed: %v", err)
	}

	root.Log.Infof("Imported %d transactions, skipped %d duplicates", summary.Inserted, summary.Skipped)
	for _, rowErr := range summary.Errors {
		root.Log.Warnf("Skipped %v", rowErr)
	}
}
