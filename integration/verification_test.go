//go:build basic

// Package integration contains integration tests for folio.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/folio/core/algo"
	"github.com/huangsam/folio/internal/importer"
)

type rankedRow struct {
	Rank    int    `json:"rank"`
	Label   string `json:"label"`
	Project struct {
		Name string `json:"name"`
	} `json:"project"`
	Breakdown struct {
		FinalScore float64 `json:"final_score"`
	} `json:"score_breakdown"`
}

// TestRankVerification imports the seed through the CLI and checks that the
// ranking read back from SQLite matches the in-process ranking of the same file.
func TestRankVerification(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FOLIO_DB_BACKEND", "sqlite")

	_, err := runFolioCommand(t, "import", seedPath)
	require.NoError(t, err)

	out, err := runFolioCommand(t, "rank", "--as-of", asOf, "--output", "json", "--limit", "100")
	require.NoError(t, err)
	var rows []rankedRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))

	records, err := importer.Load(filepath.Join("..", seedPath))
	require.NoError(t, err)
	now, err := time.Parse(time.RFC3339, asOf)
	require.NoError(t, err)
	expected := algo.RankResults(records, now, 0)

	require.Len(t, rows, len(expected))
	for i, want := range expected {
		t.Run(want.Project.Name, func(t *testing.T) {
			assert.Equal(t, want.Project.Name, rows[i].Project.Name)
			assert.Equal(t, i+1, rows[i].Rank)
			assert.InDelta(t, want.Breakdown.FinalScore, rows[i].Breakdown.FinalScore, 1e-9)
		})
	}
}

// TestFeaturedAndFilters checks the featured selection and ranking filters end to end.
func TestFeaturedAndFilters(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FOLIO_DB_BACKEND", "sqlite")

	_, err := runFolioCommand(t, "import", seedPath)
	require.NoError(t, err)

	// Only flagged projects are featured unless asked otherwise
	out, err := runFolioCommand(t, "featured", "--as-of", asOf, "--output", "json")
	require.NoError(t, err)
	var featured []rankedRow
	require.NoError(t, json.Unmarshal([]byte(out), &featured))
	require.Len(t, featured, 2)
	assert.Equal(t, "quant-engine", featured[0].Project.Name)
	assert.Equal(t, "tensor-lab", featured[1].Project.Name)

	out, err = runFolioCommand(t, "featured", "--as-of", asOf, "--flagged-only=false", "--output", "json")
	require.NoError(t, err)
	var everyone []rankedRow
	require.NoError(t, json.Unmarshal([]byte(out), &everyone))
	assert.Len(t, everyone, 5)

	out, err = runFolioCommand(t, "rank", "--as-of", asOf, "--offset", "1", "--limit", "2", "--output", "json")
	require.NoError(t, err)
	var page []rankedRow
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page, 2)
	assert.Equal(t, 2, page[0].Rank)
	assert.Equal(t, 3, page[1].Rank)

	out, err = runFolioCommand(t, "rank", "--as-of", asOf, "--language", "go", "--output", "json")
	require.NoError(t, err)
	var golang []rankedRow
	require.NoError(t, json.Unmarshal([]byte(out), &golang))
	require.Len(t, golang, 1)
	assert.Equal(t, "k8s-operator", golang[0].Project.Name)

	out, err = runFolioCommand(t, "rank", "--as-of", asOf, "--since", "2024-01-01", "--exclude", "tensor-", "--output", "json")
	require.NoError(t, err)
	var recent []rankedRow
	require.NoError(t, json.Unmarshal([]byte(out), &recent))
	require.Len(t, recent, 1)
	assert.Equal(t, "quant-engine", recent[0].Project.Name)
}

// TestNoneBackendRejectsSync checks that sync refuses to run without persistence.
func TestNoneBackendRejectsSync(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FOLIO_DB_BACKEND", "none")

	_, err := runFolioCommand(t, "sync", "--github-user", "octocat")
	assert.Error(t, err)

	out, err := runFolioCommand(t, "rank", "--output", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}
