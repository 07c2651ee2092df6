// Package list implements the list command.
package list

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abnew123/expense-ledger/cmd/root"
	"github.com/abnew123/expense-ledger/internal/storage"
)

var (
	fromDate string
	toDate   string
	category string
)

// Cmd represents the list command.
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List stored transactions",
	Run:   listFunc,
}

func listFunc(cmd *cobra.Command, args []string) {
	store, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening store: %v", err)
	}
	defer func() { _ = store.Close() }()

	txs, err := store.ListTransactions(context.Background(), storage.Filter{
		From:     fromDate,
		To:       toDate,
		Category: category,
	})
	if err != nil {
		root.Log.Fatalf("List failed: %v", err)
	}

	for _, tx := range txs {
		cmd.Printf("%-6d %s  %-9s %12s  %-24s %s\n",
			tx.ID, tx.TransactionDate, tx.Type, tx.Amount.StringFixed(2), tx.Category, tx.Description)
	}
	root.Log.Infof("%d transactions", len(txs))
}

func init() {
	Cmd.Flags().StringVar(&fromDate, "from", "", "Earliest transaction date to include (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&toDate, "to", "", "Latest transaction date to include (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&category, "category", "", "Only show transactions in this category")
}
