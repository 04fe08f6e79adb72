// Package parquet provides data structures and functions for exporting folio
// rankings and history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/folio/schema"
	"github.com/parquet-go/parquet-go"
)

// RankingRun maps to the folio_ranking_runs database table.
type RankingRun struct {
	RunID         int64      `parquet:"run_id,snappy"`
	RunKey        string     `parquet:"run_key,snappy"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int64     `parquet:"run_duration_ms,optional,snappy"`
	TotalProjects *int32     `parquet:"total_projects,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ProjectScore maps to the folio_project_scores database table.
type ProjectScore struct {
	RunID               int64     `parquet:"run_id,snappy"`
	ProjectName         string    `parquet:"project_name,snappy"`
	ProjectID           int64     `parquet:"project_id,snappy"`
	Rank                int32     `parquet:"rank,snappy"`
	ScoredAt            time.Time `parquet:"scored_at,snappy"`
	TechnicalComplexity float64   `parquet:"technical_complexity,snappy"`
	GitHubMetrics       float64   `parquet:"github_metrics,snappy"`
	Recency             float64   `parquet:"recency,snappy"`
	FinalScore          float64   `parquet:"final_score,snappy"`
	ScoreLabel          string    `parquet:"score_label,snappy"`
}

// RankedProject is one row of a ranking written with --output parquet.
type RankedProject struct {
	Rank                int32      `parquet:"rank,snappy"`
	ProjectID           int64      `parquet:"project_id,snappy"`
	Name                string     `parquet:"name,snappy"`
	Language            string     `parquet:"language,snappy"`
	Stars               int32      `parquet:"stars,snappy"`
	Forks               int32      `parquet:"forks,snappy"`
	Watchers            int32      `parquet:"watchers,snappy"`
	Featured            bool       `parquet:"featured"`
	UpdatedAt           *time.Time `parquet:"updated_at,optional,snappy"`
	TechnicalComplexity float64    `parquet:"technical_complexity,snappy"`
	GitHubMetrics       float64    `parquet:"github_metrics,snappy"`
	Recency             float64    `parquet:"recency,snappy"`
	FinalScore          float64    `parquet:"final_score,snappy"`
	Label               string     `parquet:"label,snappy"`
}

// writeRows writes rows using struct schema inference and flushes the footer.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes rows to it.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeRows(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteRankingRunsParquet writes ranking runs to a Parquet file.
func WriteRankingRunsParquet(data []RankingRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteProjectScoresParquet writes recorded project scores to a Parquet file.
func WriteProjectScoresParquet(data []ProjectScore, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteRankedProjects writes a ranking to w in Parquet format.
func WriteRankedProjects(w io.Writer, data []RankedProject) error {
	return writeRows(w, data)
}

// ConvertRankingRunRecords converts schema.RankingRunRecord to RankingRun for Parquet export.
func ConvertRankingRunRecords(records []schema.RankingRunRecord) []RankingRun {
	result := make([]RankingRun, len(records))
	for i, record := range records {
		var total *int32
		if record.TotalProjects != nil {
			v := int32(*record.TotalProjects)
			total = &v
		}
		result[i] = RankingRun{
			RunID:         record.RunID,
			RunKey:        record.RunKey,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalProjects: total,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertProjectScoreRecords converts schema.ProjectScoreRecord to ProjectScore for Parquet export.
func ConvertProjectScoreRecords(records []schema.ProjectScoreRecord) []ProjectScore {
	result := make([]ProjectScore, len(records))
	for i, record := range records {
		result[i] = ProjectScore{
			RunID:               record.RunID,
			ProjectName:         record.ProjectName,
			ProjectID:           record.ProjectID,
			Rank:                int32(record.Rank),
			ScoredAt:            record.ScoredAt,
			TechnicalComplexity: record.TechnicalComplexity,
			GitHubMetrics:       record.GitHubMetrics,
			Recency:             record.Recency,
			FinalScore:          record.FinalScore,
			ScoreLabel:          record.ScoreLabel,
		}
	}
	return result
}

// ConvertProjectResults converts ranked results to RankedProject rows.
func ConvertProjectResults(results []schema.ProjectResult) []RankedProject {
	rows := make([]RankedProject, len(results))
	for i, r := range results {
		var updated *time.Time
		if r.Project.HasUpdatedAt() {
			t := r.Project.UpdatedAt
			updated = &t
		}
		rows[i] = RankedProject{
			Rank:                int32(r.Rank),
			ProjectID:           r.Project.ID,
			Name:                r.Project.Name,
			Language:            r.Project.Language,
			Stars:               int32(r.Project.Stars),
			Forks:               int32(r.Project.Forks),
			Watchers:            int32(r.Project.Watchers),
			Featured:            r.Project.Featured,
			UpdatedAt:           updated,
			TechnicalComplexity: r.Breakdown.TechnicalComplexity,
			GitHubMetrics:       r.Breakdown.GitHubMetrics,
			Recency:             r.Breakdown.Recency,
			FinalScore:          r.Breakdown.FinalScore,
			Label:               schema.GetPlainLabel(r.Breakdown.FinalScore),
		}
	}
	return rows
}
