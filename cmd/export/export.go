// Package export implements the export command.
package export

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/abnew123/expense-ledger/cmd/root"
	exporter "github.com/abnew123/expense-ledger/internal/export"
	"github.com/abnew123/expense-ledger/internal/logging"
)

var (
	format string
	output string
	stats  bool
)

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions or category statistics",
	Run:   exportFunc,
}

func exportFunc(cmd *cobra.Command, args []string) {
	store, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening store: %v", err)
	}
	defer func() { _ = store.Close() }()

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			root.Log.Fatalf("Error creating %s: %v", output, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	e := exporter.New(store, logging.NewLogrusAdapterFromLogger(root.Log))
	ctx := context.Background()
	switch {
	case stats:
		err = e.CategoryStatsCSV(ctx, out)
	case format == "json":
		err = e.TransactionsJSON(ctx, out, true)
	default:
		err = e.TransactionsCSV(ctx, out)
	}
	if err != nil {
		root.Log.Fatalf("Export failed: %v", err)
	}
}

func init() {
	Cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or json")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	Cmd.Flags().BoolVar(&stats, "stats", false, "Export per-category statistics instead of transactions")
}
