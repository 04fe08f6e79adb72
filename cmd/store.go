package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/internal/iocache"
	"github.com/huangsam/folio/schema"
)

// loadBackendConfig reads and validates the backend settings without the full shared setup.
func loadBackendConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("db-backend"))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid db backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.DBBackend = backend
	cfg.DBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// storeSetup loads minimal configuration and opens the stores.
func storeSetup() error {
	if err := loadBackendConfig(); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.DBBackend, cfg.DBConnect); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetupWrapper loads configuration without opening the stores,
// so that migrations can run against any schema version.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return loadBackendConfig()
}

// storeCmd focused on persistence management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by the ranking commands. This avoids validating
// ranking and GitHub settings for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the project store, ranking history and response cache",
	Long: `Manage the database that holds projects, ranking history and cached GitHub responses.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored data
  migrate - Run database schema migrations
  export  - Export ranking history to Parquet
  history - List recorded ranking runs

Examples:
  folio store status
  folio store export --output-file history`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the backend, schema version, project counts, ranking history
and response cache statistics.

Examples:
  folio store status
  FOLIO_DB_BACKEND=postgresql FOLIO_DB_CONNECT="..." folio store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		projects, err := iocache.Manager.GetProjectStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get project store status", err)
		}
		iocache.PrintProjectStatus(projects)
		fmt.Println()

		history, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(history)
		fmt.Println()

		cache, err := iocache.Manager.GetResponseCache().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get response cache status", err)
		}
		iocache.PrintCacheStatus(cache)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored projects, history and cached responses",
	Long: `Delete all data from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the folio tables

WARNING: This action cannot be undone. Consider exporting history first.

Examples:
  folio store export --output-file backup
  folio store clear`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearStore(cfg.DBBackend, contract.GetDBFilePath(), cfg.DBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs database migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions of the folio store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  folio store migrate

  # Migrate to specific version
  folio store migrate --target-version 2

  # Rollback to initial state
  folio store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateStore(cfg.DBBackend, cfg.DBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// storeExportCmd exports ranking history to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ranking history to Parquet for BI tools and analytics",
	Long: `Export recorded ranking runs and project scores to Parquet.

Writes two files next to --output-file:
- <prefix>.ranking_runs.parquet
- <prefix>.project_scores.parquet

Requires: --output-file parameter

Examples:
  folio store export --output-file history
  duckdb -c "SELECT * FROM read_parquet('history.project_scores.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(iocache.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export ranking history", err)
		}
	},
}

// storeHistoryCmd lists recorded ranking runs.
var storeHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded ranking runs",
	Long: `Show every ranking run recorded with --record, newest first.

Examples:
  folio rank --record
  folio store history`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := iocache.Manager.GetHistoryStore().GetAllRuns()
		if err != nil {
			contract.LogFatal("Failed to list ranking runs", err)
		}
		if err := iocache.WriteRankingRuns(os.Stdout, runs); err != nil {
			contract.LogFatal("Failed to print ranking runs", err)
		}
	},
}
