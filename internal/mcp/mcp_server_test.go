package mcp_test

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/internal/iocache"
	mcp_internal "github.com/huangsam/folio/internal/mcp"
	"github.com/huangsam/folio/schema"
)

var asOf = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *server.MCPServer {
	t.Helper()
	store, err := iocache.NewProjectStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	seed := []schema.ProjectRecord{
		{Name: "quant-engine", Language: "Rust", Description: "options pricing with monte carlo", Stars: 80, Featured: true, UpdatedAt: asOf},
		{Name: "dotfiles", Language: "Shell", Stars: 2, UpdatedAt: asOf.AddDate(-2, 0, 0)},
		{Name: "tiny-ml", Language: "Python", Description: "pytorch experiments", Stars: 12, UpdatedAt: asOf},
	}
	for _, p := range seed {
		_, _, err := store.Upsert(context.Background(), p)
		require.NoError(t, err)
	}

	baseCfg := &contract.Config{
		ResultLimit:   10,
		Precision:     2,
		AsOf:          asOf,
		DBBackend:     schema.SQLiteBackend,
		FeaturedLimit: 6,
	}
	return mcp_internal.NewMCPServer(baseCfg, iocache.NewStoreManager(store, nil, nil))
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestRankProjects(t *testing.T) {
	s := newTestServer(t)

	t.Run("all", func(t *testing.T) {
		res := callTool(t, s, "rank_projects", map[string]any{})
		require.False(t, res.IsError)

		var ranked []schema.EnrichedProjectResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &ranked))
		require.Len(t, ranked, 3)
		assert.Equal(t, "quant-engine", ranked[0].Project.Name)
		assert.Equal(t, 1, ranked[0].Rank)
	})

	t.Run("limit and language", func(t *testing.T) {
		res := callTool(t, s, "rank_projects", map[string]any{"limit": 1.0, "language": "python"})
		require.False(t, res.IsError)

		var ranked []schema.EnrichedProjectResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &ranked))
		require.Len(t, ranked, 1)
		assert.Equal(t, "tiny-ml", ranked[0].Project.Name)
	})

	t.Run("exclude", func(t *testing.T) {
		res := callTool(t, s, "rank_projects", map[string]any{"exclude": "quant-, dotfiles"})
		require.False(t, res.IsError)

		var ranked []schema.EnrichedProjectResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &ranked))
		require.Len(t, ranked, 1)
		assert.Equal(t, "tiny-ml", ranked[0].Project.Name)
	})

	t.Run("offset pages through the ranking", func(t *testing.T) {
		var all, page []schema.EnrichedProjectResult
		res := callTool(t, s, "rank_projects", map[string]any{})
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &all))

		res = callTool(t, s, "rank_projects", map[string]any{"offset": 1.0, "limit": 1.0})
		require.False(t, res.IsError)
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &page))
		require.Len(t, page, 1)
		assert.Equal(t, all[1].Project.Name, page[0].Project.Name)
		assert.Equal(t, 2, page[0].Rank)
	})

	t.Run("negative offset", func(t *testing.T) {
		res := callTool(t, s, "rank_projects", map[string]any{"offset": -1.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "offset cannot be negative")
	})

	t.Run("limit too large", func(t *testing.T) {
		res := callTool(t, s, "rank_projects", map[string]any{"limit": 5000.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "limit cannot exceed")
	})
}

func TestGetProjectScore(t *testing.T) {
	s := newTestServer(t)

	t.Run("by name", func(t *testing.T) {
		res := callTool(t, s, "get_project_score", map[string]any{"project": "tiny-ml"})
		require.False(t, res.IsError)

		var view struct {
			ProjectName    string                `json:"project_name"`
			ScoreBreakdown schema.ScoreBreakdown `json:"score_breakdown"`
			Label          string                `json:"label"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &view))
		assert.Equal(t, "tiny-ml", view.ProjectName)
		assert.Equal(t, schema.GetPlainLabel(view.ScoreBreakdown.FinalScore), view.Label)
		assert.Len(t, view.ScoreBreakdown.Weights, 3)
	})

	t.Run("missing project", func(t *testing.T) {
		res := callTool(t, s, "get_project_score", map[string]any{"project": ""})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "project is required")
	})

	t.Run("unknown project", func(t *testing.T) {
		res := callTool(t, s, "get_project_score", map[string]any{"project": "nope"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "project not found")
	})
}

func TestGetFeaturedProjects(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "get_featured_projects", map[string]any{"limit": 2.0})
	require.False(t, res.IsError)
	var featured []schema.EnrichedProjectResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &featured))
	assert.Len(t, featured, 2)

	res = callTool(t, s, "get_featured_projects", map[string]any{"flagged_only": true})
	require.False(t, res.IsError)
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &featured))
	require.Len(t, featured, 1)
	assert.Equal(t, "quant-engine", featured[0].Project.Name)
}

func TestGetScoringMetrics(t *testing.T) {
	s := newTestServer(t)

	res := callTool(t, s, "get_scoring_metrics", nil)
	require.False(t, res.IsError)

	var model schema.MetricsRenderModel
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &model))
	assert.Len(t, model.Components, 3)
	assert.NotEmpty(t, model.Categories)
}

func TestHandlers_NoStore(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{ResultLimit: 10}, nil)

	res := callTool(t, s, "rank_projects", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "ranking failed")
}
