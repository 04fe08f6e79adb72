package algo

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/folio/schema"
)

// DefaultFeaturedLimit is the number of projects returned by FeaturedProjects when no limit is given.
const DefaultFeaturedLimit = 6

// featuredTopics mark a repository as featured when present in its GitHub topics.
var featuredTopics = []string{"machine-learning", "ml", "ai", "data-science", "quantitative-finance", "pde", "optimization"}

// featuredNameParts mark a repository as featured when contained in its name.
var featuredNameParts = []string{"options-pricing", "finite-difference", "optimization", "django", "mlflow"}

// featuredMinStars is the star count at which any repository is featured.
const featuredMinStars = 5

// RankProjects returns a new slice of projects ordered by descending score.
// Ties keep their original relative order and the input slice is left untouched.
func RankProjects(projects []schema.ProjectRecord) []schema.ProjectRecord {
	return RankProjectsAt(projects, time.Now())
}

// RankProjectsAt is RankProjects with an explicit reference time for recency.
func RankProjectsAt(projects []schema.ProjectRecord, now time.Time) []schema.ProjectRecord {
	results := RankResults(projects, now, 0)
	ranked := make([]schema.ProjectRecord, len(results))
	for i, r := range results {
		ranked[i] = r.Project
	}
	return ranked
}

// RankResults scores every project once and returns ranked results with their breakdowns.
// A positive limit truncates the output after sorting.
func RankResults(projects []schema.ProjectRecord, now time.Time, limit int) []schema.ProjectResult {
	results := make([]schema.ProjectResult, len(projects))
	for i, p := range projects {
		results[i] = schema.ProjectResult{
			Project:   cloneProject(p),
			Breakdown: ScoreBreakdownAt(p, now),
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Breakdown.FinalScore > results[j].Breakdown.FinalScore
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

// FeaturedProjects ranks projects and returns the top limit of them.
// With flaggedOnly, only projects marked as featured are considered.
func FeaturedProjects(projects []schema.ProjectRecord, now time.Time, limit int, flaggedOnly bool) []schema.ProjectResult {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	candidates := projects
	if flaggedOnly {
		candidates = make([]schema.ProjectRecord, 0, len(projects))
		for _, p := range projects {
			if p.Featured {
				candidates = append(candidates, p)
			}
		}
	}
	return RankResults(candidates, now, limit)
}

// IsFeatured applies the GitHub featuring heuristic to a repository.
func IsFeatured(name string, topics []string, stars int) bool {
	for _, t := range topics {
		if slices.Contains(featuredTopics, strings.ToLower(t)) {
			return true
		}
	}
	lower := strings.ToLower(name)
	for _, part := range featuredNameParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return stars >= featuredMinStars
}

// cloneProject copies the reference fields of a project so results never alias the input.
func cloneProject(p schema.ProjectRecord) schema.ProjectRecord {
	if p.Topics != nil {
		p.Topics = slices.Clone(p.Topics)
	}
	return p
}
