// Package cmd defines the command-line interface for folio.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(featuredCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeHistoryCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-project metadata (language, stars, forks, last update)")
	rootCmd.PersistentFlags().Bool("explain", false, "Print per-project component score breakdown")
	rootCmd.PersistentFlags().Bool("record", false, "Record the ranking run in the history tables")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of project name prefixes or patterns to ignore")
	rootCmd.PersistentFlags().String("language", "", "Only include projects written in this language")
	rootCmd.PersistentFlags().String("since", "", "Only include projects updated since this time (ISO8601 or time ago)")
	rootCmd.PersistentFlags().String("as-of", "", "Reference time for recency (ISO8601 or time ago, default now)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("offset", 0, "Number of ranked results to skip before applying the limit")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or prom")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("db-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("github-user", "", "GitHub user whose public repositories are synced")
	rootCmd.PersistentFlags().String("github-token", "", "GitHub token (prefer FOLIO_GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("github-api-url", contract.DefaultGitHubAPIURL, "GitHub REST API base URL")
	rootCmd.PersistentFlags().Float64("github-rate", contract.DefaultGitHubRate, "Maximum GitHub requests per second")
	rootCmd.PersistentFlags().String("github-cache", "yes", "Revalidate GitHub responses with cached ETags (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of featuredCmd to Viper
	featuredCmd.Flags().Int("featured-limit", contract.DefaultFeaturedLimit, "Number of projects to feature")
	featuredCmd.Flags().Bool("flagged-only", contract.DefaultFlaggedOnly, "Only consider projects flagged as featured (use --flagged-only=false to rank all)")
	if err := viper.BindPFlags(featuredCmd.Flags()); err != nil {
		contract.LogFatal("Error binding featured flags", err)
	}

	// Bind all flags of importCmd to Viper
	importCmd.Flags().Bool("watch", false, "Re-import the file whenever it changes")
	if err := viper.BindPFlags(importCmd.Flags()); err != nil {
		contract.LogFatal("Error binding import flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
