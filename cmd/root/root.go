// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abnew123/expense-ledger/internal/config"
	"github.com/abnew123/expense-ledger/internal/formats"
	"github.com/abnew123/expense-ledger/internal/logging"
	"github.com/abnew123/expense-ledger/internal/storage"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration, set in PersistentPreRun.
	Cfg *config.Config

	// DBPath overrides the configured database path when set via flag.
	DBPath string

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "expense-ledger",
		Short: "Import bank CSV exports and manage a categorized expense ledger.",
		Long: `expense-ledger ingests bank-exported CSV files in several layouts,
normalizes them into one canonical schema, skips duplicates across imports,
and maintains the category taxonomy (rename, merge, delete) over the stored
transactions.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to expense-ledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv(Log)

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Configuration error: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
		},
	}
)

// Init initializes the root command flags.
func Init() {
	Cmd.PersistentFlags().StringVar(&DBPath, "db", "", "Path to the SQLite database (overrides config)")
}

// OpenStore opens the configured transaction store.
func OpenStore() (*storage.Store, error) {
	path := Cfg.Database.Path
	if DBPath != "" {
		path = DBPath
	}
	return storage.Open(path, logging.NewLogrusAdapterFromLogger(Log))
}

// BuildRegistry returns the format registry: built-in formats plus any
// custom formats declared in the configured YAML file.
func BuildRegistry() (*formats.Registry, error) {
	registry := formats.DefaultRegistry()
	if Cfg.Import.FormatsFile != "" {
		if err := registry.LoadCustomFormats(Cfg.Import.FormatsFile); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
