package outwriter

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/huangsam/folio/schema"
)

const promNamespace = "folio"

// writeProjectProm renders ranked projects in the Prometheus text exposition format,
// suitable for the node_exporter textfile collector.
func writeProjectProm(w io.Writer, results []schema.ProjectResult) error {
	registry := prometheus.NewRegistry()

	score := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Name:      "project_score",
		Help:      "Final portfolio score of a project on the 0-10 scale.",
	}, []string{"project", "language", "label"})
	component := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Name:      "project_component_score",
		Help:      "Unweighted sub-score of a project on the 0-10 scale.",
	}, []string{"project", "component"})
	rank := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Name:      "project_rank",
		Help:      "Position of a project in the ranking, starting at 1.",
	}, []string{"project"})
	stars := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Name:      "project_stars",
		Help:      "GitHub stargazers of a project.",
	}, []string{"project"})
	ranked := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Name:      "projects_ranked",
		Help:      "Number of projects in the ranking output.",
	})

	for _, c := range []prometheus.Collector{score, component, rank, stars, ranked} {
		if err := registry.Register(c); err != nil {
			return fmt.Errorf("failed to register collector: %w", err)
		}
	}

	for _, r := range results {
		name := r.Project.Name
		score.WithLabelValues(name, r.Project.Language, schema.GetPlainLabel(r.Score())).Set(r.Score())
		for _, key := range schema.AllBreakdownKeys {
			component.WithLabelValues(name, string(key)).Set(r.Breakdown.Component(key))
		}
		rank.WithLabelValues(name).Set(float64(r.Rank))
		stars.WithLabelValues(name).Set(float64(r.Project.Stars))
	}
	ranked.Set(float64(len(results)))

	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
