// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRanking prints ranked projects using the configured output format.
func (ow *OutWriter) WriteRanking(results []schema.ProjectResult, total int, cfg *contract.Config, duration time.Duration) error {
	return WriteProjectResults(results, total, cfg, duration)
}

// WriteBreakdown prints the score breakdown of one project.
func (ow *OutWriter) WriteBreakdown(view schema.ProjectScoreView, cfg *contract.Config) error {
	return WriteProjectBreakdown(view, cfg)
}

// WriteMetrics prints the scoring model definitions.
func (ow *OutWriter) WriteMetrics(cfg *contract.Config) error {
	return WriteMetricsDefinitions(cfg)
}
