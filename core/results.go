package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/huangsam/folio/core/algo"
	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

// GetRankResults loads, filters and ranks the stored projects.
// It skips cfg.Offset ranked results, returns the next cfg.ResultLimit
// and the number of projects that passed the filters.
func GetRankResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.ProjectResult, int, error) {
	projects, err := loadProjects(ctx, cfg, mgr)
	if err != nil {
		return nil, 0, err
	}
	now := cfg.ReferenceTime()
	if !shouldSuppressHeader(ctx) {
		logRankHeader(cfg, len(projects), now)
	}

	results := pageResults(algo.RankResults(projects, now, 0), cfg.Offset, cfg.ResultLimit)
	if cfg.Record {
		recordRun(ctx, cfg, mgr, "rank", results)
	}
	return results, len(projects), nil
}

// GetFeaturedResults loads, filters and selects the featured projects.
func GetFeaturedResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.ProjectResult, int, error) {
	projects, err := loadProjects(ctx, cfg, mgr)
	if err != nil {
		return nil, 0, err
	}
	now := cfg.ReferenceTime()
	if !shouldSuppressHeader(ctx) {
		logFeaturedHeader(cfg, len(projects), now)
	}

	results := algo.FeaturedProjects(projects, now, cfg.FeaturedLimit, cfg.FlaggedOnly)
	if cfg.Record {
		recordRun(ctx, cfg, mgr, "featured", results)
	}
	return results, len(projects), nil
}

// GetProjectScore scores a single project looked up by id or name.
// A numeric target is tried as an id first and then as a name.
func GetProjectScore(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, target string) (schema.ProjectScoreView, error) {
	if target == "" {
		return schema.ProjectScoreView{}, errors.New("a project id or name is required")
	}
	store, err := projectStore(mgr)
	if err != nil {
		return schema.ProjectScoreView{}, err
	}

	p, err := lookupProject(ctx, store, target)
	if err != nil {
		return schema.ProjectScoreView{}, err
	}
	breakdown, err := algo.ScoreBreakdownChecked(p, cfg.ReferenceTime())
	if err != nil {
		return schema.ProjectScoreView{}, fmt.Errorf("cannot score %q: %w", p.Name, err)
	}
	return schema.ProjectScoreView{
		ProjectID:      p.ID,
		ProjectName:    p.Name,
		ScoreBreakdown: breakdown,
	}, nil
}

// pageResults returns up to limit results after skipping offset.
// Ranks stay global so pages can be stitched back together.
func pageResults(results []schema.ProjectResult, offset, limit int) []schema.ProjectResult {
	if offset >= len(results) {
		return []schema.ProjectResult{}
	}
	results = results[max(offset, 0):]
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// lookupProject resolves target as an id, falling back to a name match.
func lookupProject(ctx context.Context, store contract.ProjectStore, target string) (schema.ProjectRecord, error) {
	if id, err := strconv.ParseInt(target, 10, 64); err == nil {
		p, err := store.Get(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, contract.ErrProjectNotFound) {
			return schema.ProjectRecord{}, err
		}
	}
	p, err := store.GetByName(ctx, target)
	if errors.Is(err, contract.ErrProjectNotFound) {
		return schema.ProjectRecord{}, fmt.Errorf("%w: %s", contract.ErrProjectNotFound, target)
	}
	return p, err
}

// loadProjects lists the stored projects and applies the configured filters.
func loadProjects(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.ProjectRecord, error) {
	store, err := projectStore(mgr)
	if err != nil {
		return nil, err
	}
	projects, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return filterProjects(cfg, projects), nil
}
