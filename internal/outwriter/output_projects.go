package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/internal/parquet"
	"github.com/huangsam/folio/schema"
)

// WriteProjectResults outputs ranked projects, dispatching on the configured output format.
// total is the number of candidates before the result limit was applied.
func WriteProjectResults(results []schema.ProjectResult, total int, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichProjects(results))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectCSV(w, results, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteRankedProjects(w, parquet.ConvertProjectResults(results))
		}, "Wrote Parquet")
	case schema.PromOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectProm(w, results)
		}, "Wrote Prometheus metrics")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectTable(w, results, total, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeProjectTable generates and writes the human-readable ranking table.
func writeProjectTable(w io.Writer, results []schema.ProjectResult, total int, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Name", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Language", "Stars", "Forks", "Updated")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	table.Header(headers)
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	data := make([][]string, 0, len(results))
	totalStars := 0
	for _, r := range results {
		p := r.Project
		totalStars += p.Stars
		row := []string{
			strconv.Itoa(r.Rank),
			contract.TruncateName(p.Name, nameWidth),
			fmtFloat(r.Score()),
			contract.GetColorLabel(r.Score()),
		}
		if cfg.Detail {
			row = append(row,
				formatLanguage(p.Language),
				strconv.Itoa(p.Stars),
				strconv.Itoa(p.Forks),
				formatDate(p.UpdatedAt),
			)
		}
		if cfg.Explain {
			row = append(row, formatExplain(r.Breakdown, fmtFloat))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing top %d of %d projects (total stars: %d)\n", len(results), total, totalStars); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Ranked in %v. Store backend: %s\n", duration, cfg.DBBackend)
	return err
}

// writeProjectCSV writes ranked projects in CSV format.
func writeProjectCSV(w io.Writer, results []schema.ProjectResult, fmtFloat func(float64) string) error {
	header := []string{
		"rank", "project_id", "name", "language", "stars", "forks", "watchers", "featured", "updated_at",
		"technical_complexity", "github_metrics", "recency", "final_score", "label",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			p := r.Project
			b := r.Breakdown
			rec := []string{
				strconv.Itoa(r.Rank),
				strconv.FormatInt(p.ID, 10),
				p.Name,
				p.Language,
				strconv.Itoa(p.Stars),
				strconv.Itoa(p.Forks),
				strconv.Itoa(p.Watchers),
				strconv.FormatBool(p.Featured),
				formatTimestamp(p.UpdatedAt),
				fmtFloat(b.TechnicalComplexity),
				fmtFloat(b.GitHubMetrics),
				fmtFloat(b.Recency),
				fmtFloat(b.FinalScore),
				schema.GetPlainLabel(b.FinalScore),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatExplain summarizes the sub-scores as "tc=.. gm=.. rc=..".
func formatExplain(b schema.ScoreBreakdown, fmtFloat func(float64) string) string {
	parts := []string{
		"tc=" + fmtFloat(b.TechnicalComplexity),
		"gm=" + fmtFloat(b.GitHubMetrics),
		"rc=" + fmtFloat(b.Recency),
	}
	return strings.Join(parts, " ")
}

func formatLanguage(language string) string {
	if language == "" {
		return "-"
	}
	return language
}

// formatDate renders a day-level date for tables; unknown times render as "-".
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.DateOnly)
}

// formatTimestamp renders a full timestamp for machine formats; unknown times are empty.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(contract.DateTimeFormat)
}
