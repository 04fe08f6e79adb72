package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/huangsam/folio/core"
	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/internal/outwriter"
	"github.com/huangsam/folio/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRankProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		if l > contract.MaxResultLimit {
			return mcp.NewToolResultError(fmt.Sprintf("limit cannot exceed %d", contract.MaxResultLimit)), nil
		}
		cfg.ResultLimit = l
	}
	if o := request.GetInt("offset", 0); o != 0 {
		if o < 0 {
			return mcp.NewToolResultError("offset cannot be negative"), nil
		}
		cfg.Offset = o
	}
	if lang := strings.TrimSpace(request.GetString("language", "")); lang != "" {
		cfg.Language = lang
	}
	if ex := request.GetString("exclude", ""); ex != "" {
		for part := range strings.SplitSeq(ex, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cfg.Excludes = append(cfg.Excludes, part)
			}
		}
	}

	ranked, _, err := core.GetRankResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichProjects(ranked))
}

func (h *toolHandler) handleGetProjectScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	target := strings.TrimSpace(request.GetString("project", ""))
	if target == "" {
		return mcp.NewToolResultError("project is required"), nil
	}

	view, err := core.GetProjectScore(core.WithSuppressHeader(ctx), cfg, h.mgr, target)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return jsonResult(struct {
		schema.ProjectScoreView
		Label string `json:"label"`
	}{view, schema.GetPlainLabel(view.ScoreBreakdown.FinalScore)})
}

func (h *toolHandler) handleGetFeaturedProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		if l > contract.MaxResultLimit {
			return mcp.NewToolResultError(fmt.Sprintf("limit cannot exceed %d", contract.MaxResultLimit)), nil
		}
		cfg.FeaturedLimit = l
	}
	cfg.FlaggedOnly = request.GetBool("flagged_only", cfg.FlaggedOnly)

	featured, _, err := core.GetFeaturedResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("featured selection failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichProjects(featured))
}

func (h *toolHandler) handleGetScoringMetrics(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(outwriter.BuildMetricsRenderModel())
}
