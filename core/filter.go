package core

import (
	"strings"

	"github.com/huangsam/folio/core/algo"
	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

// filterProjects applies the exclude, language and since filters of cfg.
// Records that fail validation are dropped with a warning.
func filterProjects(cfg *contract.Config, projects []schema.ProjectRecord) []schema.ProjectRecord {
	filtered := make([]schema.ProjectRecord, 0, len(projects))
	for _, p := range projects {
		if !matchesFilters(cfg, p) {
			continue
		}
		if err := algo.Validate(p); err != nil {
			contract.LogWarn("Skipping project "+p.Name, err)
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// matchesFilters reports whether p passes the configured filters.
func matchesFilters(cfg *contract.Config, p schema.ProjectRecord) bool {
	if contract.ShouldIgnore(p.Name, cfg.Excludes) {
		return false
	}
	if cfg.Language != "" && !strings.EqualFold(cfg.Language, p.Language) {
		return false
	}
	if !cfg.Since.IsZero() {
		// Unknown update time cannot satisfy a lower bound
		if !p.HasUpdatedAt() || p.UpdatedAt.Before(cfg.Since) {
			return false
		}
	}
	return true
}
