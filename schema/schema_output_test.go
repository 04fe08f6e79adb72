package schema_test

import (
	"testing"

	"github.com/huangsam/folio/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{"Exceptional Score Upper", 10.0, "Exceptional"},
		{"Exceptional Score Lower", 8.0, "Exceptional"},
		{"Strong Score Upper", 7.99, "Strong"},
		{"Strong Score Lower", 6.0, "Strong"},
		{"Solid Score Upper", 5.99, "Solid"},
		{"Solid Score Lower", 4.0, "Solid"},
		{"Emerging Score Upper", 3.99, "Emerging"},
		{"Emerging Score Lower", 0.0, "Emerging"},
		{"Negative Score", -1.0, "Emerging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetPlainLabel(tt.score))
		})
	}
}

func TestEnrichProjects(t *testing.T) {
	results := []schema.ProjectResult{
		{Rank: 1, Project: schema.ProjectRecord{Name: "alpha"}, Breakdown: schema.ScoreBreakdown{FinalScore: 8.5}},
		{Rank: 2, Project: schema.ProjectRecord{Name: "beta"}, Breakdown: schema.ScoreBreakdown{FinalScore: 6.1}},
		{Rank: 3, Project: schema.ProjectRecord{Name: "gamma"}, Breakdown: schema.ScoreBreakdown{FinalScore: 1.2}},
	}

	enriched := schema.EnrichProjects(results)

	assert.Len(t, enriched, 3)
	assert.Equal(t, "Exceptional", enriched[0].Label)
	assert.Equal(t, "alpha", enriched[0].Project.Name)
	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, "Strong", enriched[1].Label)
	assert.Equal(t, "Emerging", enriched[2].Label)
	assert.Equal(t, 3, enriched[2].Rank)
}

func TestScoreBreakdownComponent(t *testing.T) {
	b := schema.ScoreBreakdown{TechnicalComplexity: 1.5, GitHubMetrics: 2.5, Recency: 3.5}
	assert.Equal(t, 1.5, b.Component(schema.BreakdownTechnicalComplexity))
	assert.Equal(t, 2.5, b.Component(schema.BreakdownGitHubMetrics))
	assert.Equal(t, 3.5, b.Component(schema.BreakdownRecency))
	assert.Equal(t, 0.0, b.Component("unknown"))
}

func TestGetDefaultWeights(t *testing.T) {
	weights := schema.GetDefaultWeights()
	sum := 0.0
	for _, key := range schema.AllBreakdownKeys {
		sum += weights[key]
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// Mutating the returned map must not leak into later calls.
	weights[schema.BreakdownRecency] = 99
	assert.Equal(t, schema.WeightRecency, schema.GetDefaultWeights()[schema.BreakdownRecency])
}
