package iocache

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/huangsam/folio/schema"
)

const statusTimeFormat = "2006-01-02 15:04:05"

// PrintProjectStatus prints project store status information.
func PrintProjectStatus(status schema.ProjectStoreStatus) {
	fmt.Printf("Project Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Schema Version: %d\n", status.SchemaVersion)
	fmt.Printf("Total Projects: %d\n", status.TotalProjects)
	if status.TotalProjects > 0 {
		fmt.Printf("Featured Projects: %d\n", status.FeaturedCount)
		if !status.LastSyncTime.IsZero() {
			fmt.Printf("Last Sync: %s\n", status.LastSyncTime.Format(statusTimeFormat))
		}
		if !status.NewestUpdatedAt.IsZero() {
			fmt.Printf("Newest Update: %s\n", status.NewestUpdatedAt.Format(statusTimeFormat))
		}
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintCacheStatus prints response cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Printf("Last Entry: %s\n", status.LastEntryTime.Format(statusTimeFormat))
		fmt.Printf("Oldest Entry: %s\n", status.OldestEntryTime.Format(statusTimeFormat))
	}
}

// PrintHistoryStatus prints ranking history status information.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run: %d (%s) at %s\n", status.LastRunID, status.LastRunKey, status.LastRunTime.Format(statusTimeFormat))
		fmt.Printf("Oldest Run: %s\n", status.OldestRunTime.Format(statusTimeFormat))
		fmt.Printf("Total Projects Scored: %d\n", status.TotalScored)
	}
	fmt.Println("Table Sizes:")
	for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
		fmt.Printf("  %s: %d rows\n", table, status.TableSizes[table])
	}
}

// WriteRankingRuns writes one line per ranking run, newest first.
func WriteRankingRuns(w io.Writer, runs []schema.RankingRunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No ranking runs recorded.")
		return err
	}
	sorted := slices.Clone(runs)
	slices.SortFunc(sorted, func(a, b schema.RankingRunRecord) int {
		return b.StartTime.Compare(a.StartTime)
	})
	for _, run := range sorted {
		projects, duration := "-", "-"
		if run.TotalProjects != nil {
			projects = fmt.Sprint(*run.TotalProjects)
		}
		if run.RunDurationMs != nil {
			duration = fmt.Sprintf("%dms", *run.RunDurationMs)
		}
		if _, err := fmt.Fprintf(w, "#%d %s  %s  projects=%s  duration=%s\n",
			run.RunID, run.StartTime.Format(statusTimeFormat), run.RunKey, projects, duration); err != nil {
			return err
		}
	}
	return nil
}
