package schema

import "time"

// ProjectStoreStatus represents the status of the project store.
type ProjectStoreStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalProjects   int       `json:"total_projects"`
	FeaturedCount   int       `json:"featured_count"`
	LastSyncTime    time.Time `json:"last_sync_time"`
	SchemaVersion   uint      `json:"schema_version"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
	NewestUpdatedAt time.Time `json:"newest_updated_at"`
}

// CacheStatus represents the status of the GitHub response cache.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
}

// HistoryStatus represents the status of the ranking history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunKey    string           `json:"last_run_key"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalScored   int              `json:"total_scored"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RankingRunRecord represents a row from the folio_ranking_runs table.
type RankingRunRecord struct {
	RunID         int64
	RunKey        string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int64
	TotalProjects *int
	ConfigParams  *string
}

// ProjectScoreRecord represents a row from the folio_project_scores table.
type ProjectScoreRecord struct {
	RunID               int64
	ProjectName         string
	ProjectID           int64
	Rank                int
	ScoredAt            time.Time
	TechnicalComplexity float64
	GitHubMetrics       float64
	Recency             float64
	FinalScore          float64
	ScoreLabel          string
}
