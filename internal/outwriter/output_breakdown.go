package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

// componentNames are the display names of the breakdown keys.
var componentNames = map[schema.BreakdownKey]string{
	schema.BreakdownTechnicalComplexity: "Technical complexity",
	schema.BreakdownGitHubMetrics:       "GitHub metrics",
	schema.BreakdownRecency:             "Recency",
}

// WriteProjectBreakdown outputs the score breakdown of a single project.
func WriteProjectBreakdown(view schema.ProjectScoreView, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, view)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBreakdownCSV(w, view, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBreakdownText(w, view, fmtFloat)
		}, "Wrote text")
	}
}

func writeBreakdownText(w io.Writer, view schema.ProjectScoreView, fmtFloat func(float64) string) error {
	b := view.ScoreBreakdown
	if _, err := fmt.Fprintf(w, "📊 %s (id %d)\n", view.ProjectName, view.ProjectID); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Component", "Score", "Weight", "Contribution"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(schema.AllBreakdownKeys))
	for _, key := range schema.AllBreakdownKeys {
		weight := b.Weights[key]
		data = append(data, []string{
			componentNames[key],
			fmtFloat(b.Component(key)),
			fmt.Sprintf("%.2f", weight),
			fmtFloat(weight * b.Component(key)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Final score: %s (%s)\n", fmtFloat(b.FinalScore), contract.GetColorLabel(b.FinalScore))
	return err
}

func writeBreakdownCSV(w io.Writer, view schema.ProjectScoreView, fmtFloat func(float64) string) error {
	header := []string{"project_id", "project_name", "component", "score", "weight"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		b := view.ScoreBreakdown
		id := strconv.FormatInt(view.ProjectID, 10)
		for _, key := range schema.AllBreakdownKeys {
			rec := []string{id, view.ProjectName, string(key), fmtFloat(b.Component(key)), fmt.Sprintf("%.2f", b.Weights[key])}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return cw.Write([]string{id, view.ProjectName, "final_score", fmtFloat(b.FinalScore), "1.00"})
	})
}
