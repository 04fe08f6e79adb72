package algo

import (
	"testing"
	"time"

	"github.com/huangsam/folio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// names extracts project names in order.
func names(projects []schema.ProjectRecord) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Name
	}
	return out
}

// TestRankProjectsStableTies checks that equal scores keep their input order.
func TestRankProjectsStableTies(t *testing.T) {
	// No keywords and no update time: final score is 0.3 * github metrics.
	a := schema.ProjectRecord{Name: "A", Stars: 10}
	b := schema.ProjectRecord{Name: "B", Stars: 50}
	c := schema.ProjectRecord{Name: "C", Stars: 10}

	require.Equal(t, ScoreAt(a, fixedNow), ScoreAt(c, fixedNow))
	require.Greater(t, ScoreAt(b, fixedNow), ScoreAt(a, fixedNow))

	ranked := RankProjectsAt([]schema.ProjectRecord{a, b, c}, fixedNow)
	assert.Equal(t, []string{"B", "A", "C"}, names(ranked))

	// Swapping the tied inputs swaps them in the output too.
	ranked = RankProjectsAt([]schema.ProjectRecord{c, b, a}, fixedNow)
	assert.Equal(t, []string{"B", "C", "A"}, names(ranked))
}

// TestRankProjectsDoesNotMutateInput checks that ranking leaves the input untouched.
func TestRankProjectsDoesNotMutateInput(t *testing.T) {
	input := []schema.ProjectRecord{
		{ID: 1, Name: "low", Stars: 1, Topics: []string{"misc"}},
		{ID: 2, Name: "high", Stars: 90, Topics: []string{"ml"}},
		{ID: 3, Name: "mid", Stars: 30},
	}
	snapshot := []schema.ProjectRecord{
		{ID: 1, Name: "low", Stars: 1, Topics: []string{"misc"}},
		{ID: 2, Name: "high", Stars: 90, Topics: []string{"ml"}},
		{ID: 3, Name: "mid", Stars: 30},
	}

	ranked := RankProjects(input)
	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"high", "mid", "low"}, names(ranked))
	assert.Equal(t, snapshot, input)

	// Results must not alias the input's reference fields.
	ranked[0].Topics[0] = "changed"
	assert.Equal(t, "ml", input[1].Topics[0])
}

// TestRankProjectsEmpty checks the empty and nil cases.
func TestRankProjectsEmpty(t *testing.T) {
	assert.Empty(t, RankProjects(nil))
	assert.Empty(t, RankProjects([]schema.ProjectRecord{}))
}

// TestRankResults checks ranks, breakdowns and limits.
func TestRankResults(t *testing.T) {
	projects := []schema.ProjectRecord{
		{Name: "a", Stars: 5},
		{Name: "b", Stars: 40, UpdatedAt: fixedNow},
		{Name: "c", Stars: 20},
	}

	results := RankResults(projects, fixedNow, 0)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i+1, r.Rank)
		assert.Equal(t, ScoreBreakdownAt(r.Project, fixedNow), r.Breakdown)
	}
	assert.Equal(t, "b", results[0].Project.Name)

	limited := RankResults(projects, fixedNow, 2)
	require.Len(t, limited, 2)
	assert.Equal(t, 2, limited[1].Rank)
}

// TestIsFeatured tests the GitHub featuring heuristic.
func TestIsFeatured(t *testing.T) {
	tests := []struct {
		name     string
		repo     string
		topics   []string
		stars    int
		expected bool
	}{
		{"featured topic", "anything", []string{"web", "Machine-Learning"}, 0, true},
		{"featured name part", "black-scholes-options-pricing", nil, 0, true},
		{"django in name", "my-django-site", nil, 1, true},
		{"enough stars", "dotfiles", nil, 5, true},
		{"plain repo", "dotfiles", []string{"shell"}, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFeatured(tt.repo, tt.topics, tt.stars))
		})
	}
}

// TestFeaturedProjects tests featured selection.
func TestFeaturedProjects(t *testing.T) {
	var projects []schema.ProjectRecord
	for i := range 10 {
		projects = append(projects, schema.ProjectRecord{
			Name:     string(rune('a' + i)),
			Stars:    i * 10,
			Featured: i%2 == 0,
		})
	}

	top := FeaturedProjects(projects, fixedNow, 0, false)
	require.Len(t, top, DefaultFeaturedLimit)
	assert.Equal(t, "j", top[0].Project.Name)

	flagged := FeaturedProjects(projects, fixedNow, 3, true)
	require.Len(t, flagged, 3)
	for _, r := range flagged {
		assert.True(t, r.Project.Featured)
	}
	assert.Equal(t, "i", flagged[0].Project.Name)
}

func BenchmarkRankResults(b *testing.B) {
	projects := make([]schema.ProjectRecord, 200)
	for i := range projects {
		projects[i] = schema.ProjectRecord{
			Name:        "project",
			Description: "docker kubernetes optimization",
			Stars:       i % 37,
			Forks:       i % 11,
			UpdatedAt:   fixedNow.Add(-time.Duration(i) * 24 * time.Hour),
		}
	}
	for b.Loop() {
		_ = RankResults(projects, fixedNow, 0)
	}
}
