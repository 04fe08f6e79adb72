package core

import (
	"context"
	"time"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

// recordRun persists a ranking run and its scores in the history store.
// Tracking failures are reported as warnings and never fail the command.
func recordRun(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, command string, results []schema.ProjectResult) {
	if mgr == nil {
		return
	}
	history := mgr.GetHistoryStore()
	if history == nil {
		return
	}

	configParams := map[string]any{
		"command":      command,
		"result_limit": cfg.ResultLimit,
		"as_of":        cfg.ReferenceTime().Format(time.RFC3339),
	}
	if cfg.Offset > 0 {
		configParams["offset"] = cfg.Offset
	}
	if cfg.Language != "" {
		configParams["language"] = cfg.Language
	}
	if len(cfg.Excludes) > 0 {
		configParams["excludes"] = cfg.Excludes
	}
	if command == "featured" {
		configParams["featured_limit"] = cfg.FeaturedLimit
		configParams["flagged_only"] = cfg.FlaggedOnly
	}

	runID, _, err := history.BeginRun(time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Ranking run tracking initialization failed", err)
		return
	}
	if runID <= 0 {
		return
	}
	ctx = withRunID(ctx, runID)
	recordScores(ctx, history, results)

	if err := history.EndRun(runID, time.Now(), len(results)); err != nil {
		contract.LogWarn("Ranking run tracking completion failed", err)
	}
}

// recordScores stores every result under the run id carried by ctx.
func recordScores(ctx context.Context, history contract.HistoryStore, results []schema.ProjectResult) {
	runID, ok := getRunID(ctx)
	if !ok {
		return
	}
	for _, r := range results {
		if err := history.RecordScore(runID, r); err != nil {
			contract.LogWarn("Failed to record score for "+r.Project.Name, err)
		}
	}
}
