// Package category implements the category lifecycle commands.
package category

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abnew123/expense-ledger/cmd/root"
	"github.com/abnew123/expense-ledger/internal/storage"
)

var deleteInto string

// Cmd represents the category command and its subcommands.
var Cmd = &cobra.Command{
	Use:   "category",
	Short: "Manage the category taxonomy over stored transactions",
}

var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a category across all transactions",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(store *storage.Store) {
			affected, err := store.RenameCategory(context.Background(), args[0], args[1])
			if err != nil {
				root.Log.Fatalf("Rename failed: %v", err)
			}
			root.Log.Infof("Renamed %q to %q (%d transactions)", args[0], args[1], affected)
		})
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge <target> <source>...",
	Short: "Merge one or more categories into a target category",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(store *storage.Store) {
			target, sources := args[0], args[1:]
			affected, err := store.MergeCategories(context.Background(), sources, target)
			if err != nil {
				root.Log.Fatalf("Merge failed: %v", err)
			}
			root.Log.Infof("Merged %d transactions into %q", affected, target)
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a category, reassigning its transactions",
	Long: `Delete a category as a grouping. Its transactions are reassigned to the
replacement category (default Uncategorized); no transactions are deleted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(store *storage.Store) {
			affected, err := store.DeleteCategory(context.Background(), args[0], deleteInto)
			if err != nil {
				root.Log.Fatalf("Delete failed: %v", err)
			}
			root.Log.Infof("Deleted category %q (%d transactions reassigned)", args[0], affected)
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories currently in use",
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(store *storage.Store) {
			categories, err := store.ListCategories(context.Background())
			if err != nil {
				root.Log.Fatalf("List failed: %v", err)
			}
			for _, c := range categories {
				cmd.Println(c)
			}
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-category count, expense total and date span",
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(store *storage.Store) {
			stats, err := store.CategoryStats(context.Background())
			if err != nil {
				root.Log.Fatalf("Stats failed: %v", err)
			}
			for _, s := range stats {
				cmd.Printf("%-30s %6d  %12s  %s .. %s\n",
					s.Category, s.Count, s.ExpenseTotal.StringFixed(2), s.FirstDate, s.LastDate)
			}
		})
	},
}

func withStore(f func(*storage.Store)) {
	store, err := root.OpenStore()
	if err != nil {
		root.Log.Fatalf("Error opening store: %v", err)
	}
	defer func() { _ = store.Close() }()
	f(store)
}

func init() {
	deleteCmd.Flags().StringVar(&deleteInto, "into", "", "Replacement category for the deleted one (default Uncategorized)")
	Cmd.AddCommand(renameCmd, mergeCmd, deleteCmd, listCmd, statsCmd)
}
