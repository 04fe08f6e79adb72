// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huangsam/folio/internal/contract"
)

// NewMCPServer initializes and configures the Folio MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Folio Portfolio Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: rank_projects ---
	s.AddTool(mcp.NewTool("rank_projects",
		mcp.WithDescription("Rank the stored portfolio projects by their composite score."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
		mcp.WithNumber("offset", mcp.Description("Number of ranked results to skip, for pagination.")),
		mcp.WithString("language", mcp.Description("Only rank projects written in this language (case-insensitive).")),
		mcp.WithString("exclude", mcp.Description("Comma-separated project name patterns to exclude.")),
	), h.handleRankProjects)

	// --- 2. Tool: get_project_score ---
	s.AddTool(mcp.NewTool("get_project_score",
		mcp.WithDescription("Explain the score of a single project component by component."),
		mcp.WithString("project", mcp.Description("Project id or name."), mcp.Required()),
	), h.handleGetProjectScore)

	// --- 3. Tool: get_featured_projects ---
	s.AddTool(mcp.NewTool("get_featured_projects",
		mcp.WithDescription("Select the top projects for a portfolio landing page."),
		mcp.WithNumber("limit", mcp.Description("Number of projects to feature (defaults to 6).")),
		mcp.WithBoolean("flagged_only", mcp.Description("Only consider projects flagged as featured (on by default).")),
	), h.handleGetFeaturedProjects)

	// --- 4. Tool: get_scoring_metrics ---
	s.AddTool(mcp.NewTool("get_scoring_metrics",
		mcp.WithDescription("Describe the scoring formula, its weights and keyword categories."),
	), h.handleGetScoringMetrics)

	return s
}

// StartMCPServer starts the Folio MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
