package core

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

// Headers go to stderr so that csv and json output on stdout stay parseable.

// logRankHeader prints a header for ranking.
func logRankHeader(cfg *contract.Config, count int, now time.Time) {
	_, _ = fmt.Fprintf(os.Stderr, "🧭 Ranking %d projects (store: %s)\n", count, cfg.DBBackend)
	_, _ = fmt.Fprintf(os.Stderr, "📅 As of: %s%s\n", now.Format(contract.DateTimeFormat), filterSummary(cfg))
}

// logFeaturedHeader prints a header for the featured selection.
func logFeaturedHeader(cfg *contract.Config, count int, now time.Time) {
	scope := "all"
	if cfg.FlaggedOnly {
		scope = "flagged"
	}
	_, _ = fmt.Fprintf(os.Stderr, "⭐ Featuring %s projects out of %d (store: %s)\n", scope, count, cfg.DBBackend)
	_, _ = fmt.Fprintf(os.Stderr, "📅 As of: %s%s\n", now.Format(contract.DateTimeFormat), filterSummary(cfg))
}

// logSyncHeader prints a header for GitHub sync.
func logSyncHeader(cfg *contract.Config) {
	_, _ = fmt.Fprintf(os.Stderr, "🔄 Syncing public repositories of %s from %s\n", cfg.GitHubUser, cfg.GitHubAPIURL)
}

// filterSummary describes the active filters, or returns an empty string.
func filterSummary(cfg *contract.Config) string {
	var parts []string
	if cfg.Language != "" {
		parts = append(parts, "language="+cfg.Language)
	}
	if !cfg.Since.IsZero() {
		parts = append(parts, "since="+cfg.Since.Format(contract.DateTimeFormat))
	}
	if len(cfg.Excludes) > 0 {
		parts = append(parts, "excludes="+strings.Join(cfg.Excludes, ","))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, " ") + ")"
}

// printSyncResult prints the summary of a sync.
func printSyncResult(user string, result schema.SyncResult, duration time.Duration) {
	fmt.Printf("🔄 Synced %d repositories of %s: %d created, %d updated, %d skipped (in %v)\n",
		result.TotalRepos, user, result.Created, result.Updated, result.Skipped, duration.Round(time.Millisecond))
}

// printImportResult prints the summary of an import.
func printImportResult(path string, result schema.ImportResult) {
	fmt.Printf("📥 Imported %d projects from %s: %d created, %d updated\n",
		result.Total, path, result.Created, result.Updated)
}
