package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/folio/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"ranking runs", new(RankingRun), []string{"run_id", "run_key", "start_time", "end_time", "run_duration_ms", "total_projects", "config_params"}},
		{"project scores", new(ProjectScore), []string{"run_id", "project_name", "project_id", "rank", "scored_at", "technical_complexity", "github_metrics", "recency", "final_score", "score_label"}},
		{"ranked projects", new(RankedProject), []string{"rank", "name", "stars", "updated_at", "final_score", "label"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, colName := range tt.columns {
				_, ok := s.Lookup(colName)
				assert.True(t, ok, "Column %s should exist in schema", colName)
			}
		})
	}
}

// readAll reads every row of a Parquet file.
func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestWriteRankingRunsParquet(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	duration := int64(1500)
	total := 4
	params := `{"limit":10}`

	records := []schema.RankingRunRecord{
		{RunID: 1, RunKey: "a", StartTime: start, EndTime: &end, RunDurationMs: &duration, TotalProjects: &total, ConfigParams: &params},
		{RunID: 2, RunKey: "b", StartTime: start.Add(time.Hour)},
	}
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WriteRankingRunsParquet(ConvertRankingRunRecords(records), outputPath))

	rows := readAll[RankingRun](t, outputPath)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].RunKey)
	require.NotNil(t, rows[0].EndTime)
	assert.WithinDuration(t, end, *rows[0].EndTime, time.Nanosecond)
	require.NotNil(t, rows[0].TotalProjects)
	assert.Equal(t, int32(4), *rows[0].TotalProjects)
	assert.Nil(t, rows[1].EndTime)
	assert.Nil(t, rows[1].RunDurationMs)
	assert.Nil(t, rows[1].ConfigParams)
}

func TestWriteProjectScoresParquet(t *testing.T) {
	scored := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []schema.ProjectScoreRecord{
		{RunID: 1, ProjectName: "options-pricing", ProjectID: 7, Rank: 1, ScoredAt: scored, FinalScore: 6.5, ScoreLabel: schema.StrongValue},
		{RunID: 1, ProjectName: "dotfiles", ProjectID: 8, Rank: 2, ScoredAt: scored, FinalScore: 1.2, ScoreLabel: schema.EmergingValue},
	}
	outputPath := filepath.Join(t.TempDir(), "scores.parquet")
	require.NoError(t, WriteProjectScoresParquet(ConvertProjectScoreRecords(records), outputPath))

	rows := readAll[ProjectScore](t, outputPath)
	require.Len(t, rows, 2)
	assert.Equal(t, "options-pricing", rows[0].ProjectName)
	assert.Equal(t, int32(2), rows[1].Rank)
	assert.Equal(t, 1.2, rows[1].FinalScore)
}

func TestWriteRankedProjects(t *testing.T) {
	updated := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	results := []schema.ProjectResult{
		{Rank: 1, Project: schema.ProjectRecord{ID: 3, Name: "mlops", Stars: 40, UpdatedAt: updated}, Breakdown: schema.ScoreBreakdown{FinalScore: 8.1}},
		{Rank: 2, Project: schema.ProjectRecord{ID: 4, Name: "notes"}, Breakdown: schema.ScoreBreakdown{FinalScore: 0.3}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRankedProjects(&buf, ConvertProjectResults(results)))
	assert.Positive(t, buf.Len())

	reader := parquet.NewGenericReader[RankedProject](bytes.NewReader(buf.Bytes()))
	defer func() { _ = reader.Close() }()
	rows := make([]RankedProject, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)
	assert.Equal(t, schema.ExceptionalValue, rows[0].Label)
	require.NotNil(t, rows[0].UpdatedAt)
	assert.True(t, updated.Equal(*rows[0].UpdatedAt))
	assert.Nil(t, rows[1].UpdatedAt)
}

func TestWriteParquetEmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRankingRunsParquet([]RankingRun{}, outputPath))
	assert.Empty(t, readAll[RankingRun](t, outputPath))
}

func TestWriteParquetInvalidPath(t *testing.T) {
	err := WriteProjectScoresParquet(nil, filepath.Join(t.TempDir(), "missing", "dir", "x.parquet"))
	assert.Error(t, err)
}
