package algo

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/huangsam/folio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC)

// TestTechnicalComplexity tests the keyword heuristic.
func TestTechnicalComplexity(t *testing.T) {
	tests := []struct {
		name     string
		project  schema.ProjectRecord
		expected float64
	}{
		{
			name:     "no keywords",
			project:  schema.ProjectRecord{Name: "abc"},
			expected: 0,
		},
		{
			name:     "empty record",
			project:  schema.ProjectRecord{},
			expected: 0,
		},
		{
			name:    "python language only",
			project: schema.ProjectRecord{Name: "tool", Language: "Python"},
			// frameworks: python 0.6 + 0.2 bonus = 0.8, times 0.1
			expected: 0.08,
		},
		{
			name:    "docker name matches docker and r",
			project: schema.ProjectRecord{Name: "Docker"},
			// production: 1.0 + 0.2 = 1.2 * 0.3 = 0.36
			// frameworks: "r" 0.7 + 0.2 = 0.9 * 0.1 = 0.09
			expected: 0.45,
		},
		{
			name:    "substring match torch inside pytorch",
			project: schema.ProjectRecord{Name: "abc", Description: "PyTorch"},
			// ml: pytorch 1.0 + torch 0.9 -> avg 0.95 + 0.4 = 1.35 * 0.4 = 0.54
			// frameworks: "r" 0.9 * 0.1 = 0.09
			expected: 0.63,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, TechnicalComplexity(tt.project), 1e-9)
		})
	}
}

// TestTechnicalComplexityOrdering checks that richer keyword sets score higher.
func TestTechnicalComplexityCeiling(t *testing.T) {
	p := schema.ProjectRecord{
		Name: "tensorflow pytorch kubeflow mlflow",
		Description: "docker kubernetes terraform aws quantum pde finite element " +
			"deep learning reinforcement rust julia c++ scala",
		Language: "Rust",
	}
	tc := TechnicalComplexity(p)
	assert.Greater(t, tc, 1.5)
	assert.LessOrEqual(t, tc, 2.0)
}

func TestTechnicalComplexityOrdering(t *testing.T) {
	rich := schema.ProjectRecord{Name: "abc", Description: "pytorch and docker for optimization"}
	plain := schema.ProjectRecord{Name: "abc", Description: "python"}
	assert.Greater(t, TechnicalComplexity(rich), TechnicalComplexity(plain))
}

// TestCategoryScore tests the per-category formula.
func TestCategoryScore(t *testing.T) {
	kws := []keyword{{"alpha", 1.0}, {"beta", 0.5}, {"gamma", 0.6}, {"delta", 0.4}, {"omega", 0.5}, {"sigma", 0.5}}

	assert.Equal(t, 0.0, categoryScore("nothing here", kws))
	assert.InDelta(t, 1.2, categoryScore("alpha", kws), 1e-9)
	assert.InDelta(t, 0.75+0.4, categoryScore("alpha beta", kws), 1e-9)
	// Six matches cap the bonus at 1.0.
	assert.InDelta(t, 3.5/6+1.0, categoryScore("alpha beta gamma delta omega sigma", kws), 1e-9)
}

// TestGitHubMetrics tests the community metrics score.
func TestGitHubMetrics(t *testing.T) {
	tests := []struct {
		name                   string
		stars, forks, watchers int
		expected               float64
	}{
		{"all zero", 0, 0, 0, 0},
		{"clamped at ten", 50, 25, 0, 10},
		{"partial", 10, 5, 3, 2.3},
		{"watchers only", 0, 0, 40, 4},
		{"far above cap", 5000, 900, 12, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := schema.ProjectRecord{Stars: tt.stars, Forks: tt.forks, Watchers: tt.watchers}
			assert.InDelta(t, tt.expected, GitHubMetrics(p), 1e-9)
		})
	}
}

// TestRecency tests the linear decay over 30-day windows.
func TestRecency(t *testing.T) {
	tests := []struct {
		name      string
		updatedAt time.Time
		expected  float64
	}{
		{"unknown", time.Time{}, 0},
		{"updated now", fixedNow, 10},
		{"fifteen days", fixedNow.Add(-15 * 24 * time.Hour), 9.5},
		{"partial day is floored", fixedNow.Add(-(29*24 + 23) * time.Hour), 10 - 29.0/30},
		{"three hundred days", fixedNow.Add(-300 * 24 * time.Hour), 0},
		{"over three hundred days", fixedNow.Add(-400 * 24 * time.Hour), 0},
		{"future timestamp", fixedNow.Add(48 * time.Hour), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := schema.ProjectRecord{UpdatedAt: tt.updatedAt}
			assert.InDelta(t, tt.expected, Recency(p, fixedNow), 1e-9)
		})
	}
}

// TestRecencyTimeZones checks that the same instant scores the same in any zone.
func TestRecencyTimeZones(t *testing.T) {
	zone := time.FixedZone("UTC+9", 9*60*60)
	updated := fixedNow.Add(-60 * 24 * time.Hour)

	utc := Recency(schema.ProjectRecord{UpdatedAt: updated}, fixedNow)
	local := Recency(schema.ProjectRecord{UpdatedAt: updated.In(zone)}, fixedNow.In(zone))

	assert.InDelta(t, 8.0, utc, 1e-9)
	assert.Equal(t, utc, local)
}

// TestScoreBreakdownInvariant checks that the final score is derived from the sub-scores.
func TestScoreBreakdownInvariant(t *testing.T) {
	projects := []schema.ProjectRecord{
		{},
		{Name: "options-pricing", Description: "Finite difference PDE solver with Monte Carlo", Language: "C++", Stars: 12, Forks: 3, UpdatedAt: fixedNow.Add(-10 * 24 * time.Hour)},
		{Name: "mlops", Description: "MLflow on Kubernetes with Docker and Terraform", Language: "Python", Stars: 80, Forks: 30, Watchers: 5, UpdatedAt: fixedNow},
		{Name: "abc", Stars: 3, UpdatedAt: fixedNow.Add(-500 * 24 * time.Hour)},
	}

	for _, p := range projects {
		b := ScoreBreakdownAt(p, fixedNow)
		expected := math.Round((0.5*b.TechnicalComplexity+0.3*b.GitHubMetrics+0.2*b.Recency)*100) / 100

		assert.Equal(t, expected, b.FinalScore, "project %q", p.Name)
		assert.Equal(t, b.FinalScore, ScoreAt(p, fixedNow))
		assert.GreaterOrEqual(t, b.FinalScore, 0.0)
		assert.LessOrEqual(t, b.FinalScore, 10.0)
		assert.Equal(t, schema.GetDefaultWeights(), b.Weights)
	}
}

// TestScoreBreakdownKnownValue checks a fully computed example.
func TestScoreBreakdownKnownValue(t *testing.T) {
	p := schema.ProjectRecord{
		Name:      "Docker",
		Stars:     50,
		Forks:     25,
		UpdatedAt: fixedNow.Add(-15 * 24 * time.Hour),
	}
	b := ScoreBreakdownAt(p, fixedNow)

	assert.InDelta(t, 0.45, b.TechnicalComplexity, 1e-9)
	assert.Equal(t, 10.0, b.GitHubMetrics)
	assert.InDelta(t, 9.5, b.Recency, 1e-9)
	// 0.5*0.45 + 0.3*10 + 0.2*9.5 = 5.125
	assert.InDelta(t, 5.13, b.FinalScore, 0.006)
}

// TestValidate tests structural validation.
func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(schema.ProjectRecord{Name: "ok"}))

	for _, p := range []schema.ProjectRecord{
		{Stars: -1},
		{Forks: -2},
		{Watchers: -3},
	} {
		err := Validate(p)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}

	_, err := ScoreChecked(schema.ProjectRecord{Stars: -1}, fixedNow)
	assert.ErrorIs(t, err, ErrInvalidInput)

	score, err := ScoreChecked(schema.ProjectRecord{Stars: 50, Forks: 25}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 3.0, score)
}

// TestCategories checks the exported keyword tables.
func TestCategories(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 4)

	sum := 0.0
	for _, c := range cats {
		sum += c.Weight
		assert.NotEmpty(t, c.Keywords)
		for _, k := range c.Keywords {
			assert.Greater(t, k.Weight, 0.0)
			assert.LessOrEqual(t, k.Weight, 1.0)
		}
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Equal(t, CategoryML, cats[0].Name)
	assert.Equal(t, "tensorflow", cats[0].Keywords[0].Keyword)
}

func BenchmarkScoreBreakdown(b *testing.B) {
	p := schema.ProjectRecord{
		Name:        "quant-lab",
		Description: "Bayesian optimization and reinforcement learning with PyTorch on Kubernetes",
		Language:    "Python",
		Stars:       42,
		Forks:       7,
		UpdatedAt:   fixedNow.Add(-20 * 24 * time.Hour),
	}
	for b.Loop() {
		_ = ScoreBreakdownAt(p, fixedNow)
	}
}
