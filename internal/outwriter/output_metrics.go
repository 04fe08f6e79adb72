package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/folio/core/algo"
	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

// BuildMetricsRenderModel describes the scoring formula, its weights and keyword tables.
func BuildMetricsRenderModel() *schema.MetricsRenderModel {
	weights := schema.GetDefaultWeights()
	components := []schema.MetricsComponent{
		{
			Key:     schema.BreakdownTechnicalComplexity,
			Purpose: "Keyword indicators of ML, production, math and language depth",
			Weight:  weights[schema.BreakdownTechnicalComplexity],
			Formula: "sum(category_weight * (avg(matched weights) + min(1, 0.2*matches))) / sum(matched category weights)",
		},
		{
			Key:     schema.BreakdownGitHubMetrics,
			Purpose: "Community traction on GitHub",
			Weight:  weights[schema.BreakdownGitHubMetrics],
			Formula: "min(10, (stars + 2*forks + watchers) / 100 * 10)",
		},
		{
			Key:     schema.BreakdownRecency,
			Purpose: "How recently the project was updated",
			Weight:  weights[schema.BreakdownRecency],
			Formula: "clamp(10 - days_since_update/30, 0, 10)",
		},
	}

	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = fmt.Sprintf("%.1f*%s", c.Weight, c.Key)
	}

	return &schema.MetricsRenderModel{
		Title:       "Folio Scoring Model",
		Description: "Every score is on a 0-10 scale; the final score is rounded to 2 decimals",
		Formula:     strings.Join(parts, " + "),
		Components:  components,
		Categories:  algo.Categories(),
		Notes: []string{
			"Keywords match as case-insensitive substrings of name, description and language",
			"Projects without an update time get a recency of 0",
			"Labels: Exceptional >= 8, Strong >= 6, Solid >= 4, otherwise Emerging",
		},
	}
}

// WriteMetricsDefinitions displays the scoring model.
// This is a static display that does not read the store.
func WriteMetricsDefinitions(cfg *contract.Config) error {
	model := BuildMetricsRenderModel()

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsCSV(w, model)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsText(w, model)
		}, "Wrote text")
	}
}

func writeMetricsText(w io.Writer, model *schema.MetricsRenderModel) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🧭 %s\n", model.Title)
	fmt.Fprintf(&sb, "%s\n\n", strings.Repeat("=", len(model.Title)+3))
	fmt.Fprintf(&sb, "%s\n", model.Description)
	fmt.Fprintf(&sb, "Score = %s\n\n", model.Formula)

	for _, c := range model.Components {
		fmt.Fprintf(&sb, "%s (weight %.1f): %s\n", componentNames[c.Key], c.Weight, c.Purpose)
		fmt.Fprintf(&sb, "   Formula: %s\n", c.Formula)
	}

	sb.WriteString("\nKeyword indicators\n")
	for _, cat := range model.Categories {
		kws := make([]string, len(cat.Keywords))
		for i, k := range cat.Keywords {
			kws[i] = fmt.Sprintf("%s %.1f", k.Keyword, k.Weight)
		}
		fmt.Fprintf(&sb, "   %s (weight %.1f): %s\n", cat.Name, cat.Weight, strings.Join(kws, ", "))
	}

	sb.WriteString("\nNotes\n")
	for _, n := range model.Notes {
		fmt.Fprintf(&sb, "   - %s\n", n)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMetricsCSV(w io.Writer, model *schema.MetricsRenderModel) error {
	header := []string{"kind", "name", "weight", "detail"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range model.Components {
			if err := cw.Write([]string{"component", string(c.Key), fmt.Sprintf("%.2f", c.Weight), c.Formula}); err != nil {
				return err
			}
		}
		for _, cat := range model.Categories {
			for _, k := range cat.Keywords {
				if err := cw.Write([]string{cat.Name, k.Keyword, fmt.Sprintf("%.2f", k.Weight), ""}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
