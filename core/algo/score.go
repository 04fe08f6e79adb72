// Package algo has the pure scoring and ranking algorithms for portfolio projects.
//
// Every sub-score is clamped to [0,10], but technical complexity is a weighted
// average of per-category scores that each top out at 2 (average keyword weight
// plus a match bonus of at most 1). It is not rescaled, so in practice it stays
// within [0,2] and contributes at most 1.0 to the final score.
package algo

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/huangsam/folio/schema"
)

// ErrInvalidInput is returned when a project record is structurally invalid.
var ErrInvalidInput = errors.New("invalid input")

const (
	// recencyWindowDays is the number of days it takes to lose one recency point.
	recencyWindowDays = 30.0

	// metricsScale converts the weighted community count into the 0-10 range.
	metricsScale = 100.0

	// matchBonusStep is the bonus per matched keyword within a category.
	matchBonusStep = 0.2

	// matchBonusCap bounds the per-category keyword count bonus.
	matchBonusCap = 1.0
)

// Validate checks that a project record can be scored.
func Validate(p schema.ProjectRecord) error {
	switch {
	case p.Stars < 0:
		return fmt.Errorf("%w: stars must be >= 0 (received %d)", ErrInvalidInput, p.Stars)
	case p.Forks < 0:
		return fmt.Errorf("%w: forks must be >= 0 (received %d)", ErrInvalidInput, p.Forks)
	case p.Watchers < 0:
		return fmt.Errorf("%w: watchers must be >= 0 (received %d)", ErrInvalidInput, p.Watchers)
	}
	return nil
}

// Score returns the final composite score of a project, rounded to 2 decimals.
func Score(p schema.ProjectRecord) float64 {
	return ScoreAt(p, time.Now())
}

// ScoreAt is Score with an explicit reference time for recency.
func ScoreAt(p schema.ProjectRecord, now time.Time) float64 {
	return ScoreBreakdownAt(p, now).FinalScore
}

// ScoreBreakdown returns all sub-scores, the final score and the weight table.
func ScoreBreakdown(p schema.ProjectRecord) schema.ScoreBreakdown {
	return ScoreBreakdownAt(p, time.Now())
}

// ScoreBreakdownAt is ScoreBreakdown with an explicit reference time for recency.
func ScoreBreakdownAt(p schema.ProjectRecord, now time.Time) schema.ScoreBreakdown {
	tc := TechnicalComplexity(p)
	gm := GitHubMetrics(p)
	rc := Recency(p, now)

	final := schema.WeightTechnicalComplexity*tc +
		schema.WeightGitHubMetrics*gm +
		schema.WeightRecency*rc

	return schema.ScoreBreakdown{
		TechnicalComplexity: tc,
		GitHubMetrics:       gm,
		Recency:             rc,
		FinalScore:          roundTo(final, 2),
		Weights:             schema.GetDefaultWeights(),
	}
}

// ScoreBreakdownChecked validates the record before scoring it.
func ScoreBreakdownChecked(p schema.ProjectRecord, now time.Time) (schema.ScoreBreakdown, error) {
	if err := Validate(p); err != nil {
		return schema.ScoreBreakdown{}, err
	}
	return ScoreBreakdownAt(p, now), nil
}

// ScoreChecked validates the record before scoring it.
func ScoreChecked(p schema.ProjectRecord, now time.Time) (float64, error) {
	b, err := ScoreBreakdownChecked(p, now)
	if err != nil {
		return 0, err
	}
	return b.FinalScore, nil
}

// TechnicalComplexity scores keyword indicators found in the project's text fields.
// Matching is case-insensitive and unanchored, so "torch" also matches "pytorch".
// The result never exceeds 2; see the package doc.
func TechnicalComplexity(p schema.ProjectRecord) float64 {
	blob := strings.ToLower(p.Name + " " + p.Description + " " + p.Language)

	weighted := 0.0
	totalWeight := 0.0
	for _, c := range categories {
		weighted += categoryScore(blob, c.keywords) * c.weight
		totalWeight += c.weight
	}
	if totalWeight == 0 {
		return 0
	}
	return clamp(weighted/totalWeight, schema.MinScore, schema.MaxScore)
}

// categoryScore returns avg(found weights) + min(1, 0.2*found), capped at 10.
func categoryScore(blob string, keywords []keyword) float64 {
	found := 0
	sum := 0.0
	for _, k := range keywords {
		if strings.Contains(blob, k.term) {
			found++
			sum += k.weight
		}
	}
	if found == 0 {
		return 0
	}
	avg := sum / float64(found)
	bonus := math.Min(matchBonusCap, matchBonusStep*float64(found))
	return math.Min(avg+bonus, schema.MaxScore)
}

// GitHubMetrics scores community interest: (stars + 2*forks + watchers) / 100 * 10.
func GitHubMetrics(p schema.ProjectRecord) float64 {
	raw := float64(p.Stars) + 2*float64(p.Forks) + float64(p.Watchers)
	return clamp(raw/metricsScale*schema.MaxScore, schema.MinScore, schema.MaxScore)
}

// Recency decays linearly by one point per 30 whole days since the last update.
// An unknown update time scores 0. Timestamps are compared in UTC.
func Recency(p schema.ProjectRecord, now time.Time) float64 {
	if !p.HasUpdatedAt() {
		return 0
	}
	elapsed := now.UTC().Sub(p.UpdatedAt.UTC())
	days := math.Floor(elapsed.Hours() / 24)
	return clamp(schema.MaxScore-days/recencyWindowDays, schema.MinScore, schema.MaxScore)
}

// Categories returns the keyword indicator tables for display.
func Categories() []schema.MetricsCategory {
	out := make([]schema.MetricsCategory, 0, len(categories))
	for _, c := range categories {
		kws := make([]schema.MetricsKeyword, len(c.keywords))
		for i, k := range c.keywords {
			kws[i] = schema.MetricsKeyword{Keyword: k.term, Weight: k.weight}
		}
		out = append(out, schema.MetricsCategory{Name: c.name, Weight: c.weight, Keywords: kws})
	}
	return out
}

// clamp bounds v to [lo, hi]. NaN collapses to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundTo rounds v half away from zero to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
