// Package schema has models and constants shared by all parts of folio.
package schema

import "time"

// ProjectRecord is a portfolio project as read from storage or GitHub.
// The scoring engine only reads Name, Description, Language, Stars, Forks,
// Watchers and UpdatedAt; the other fields belong to the collaborators.
type ProjectRecord struct {
	ID          int64     `json:"id"`
	GitHubID    int64     `json:"github_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	URL         string    `json:"url,omitempty"`
	Topics      []string  `json:"topics,omitempty"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Watchers    int       `json:"watchers"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"` // zero value means unknown
	SyncedAt    time.Time `json:"synced_at,omitzero"`
}

// HasUpdatedAt reports whether the last-updated timestamp is known.
func (p ProjectRecord) HasUpdatedAt() bool {
	return !p.UpdatedAt.IsZero()
}

// ScoreBreakdown holds every component of a project score.
// Sub-scores are kept unrounded; FinalScore is rounded to 2 decimals.
type ScoreBreakdown struct {
	TechnicalComplexity float64                  `json:"technical_complexity"`
	GitHubMetrics       float64                  `json:"github_metrics"`
	Recency             float64                  `json:"recency"`
	FinalScore          float64                  `json:"final_score"`
	Weights             map[BreakdownKey]float64 `json:"weights"`
}

// Component returns the sub-score for a breakdown key.
func (b ScoreBreakdown) Component(key BreakdownKey) float64 {
	switch key {
	case BreakdownTechnicalComplexity:
		return b.TechnicalComplexity
	case BreakdownGitHubMetrics:
		return b.GitHubMetrics
	case BreakdownRecency:
		return b.Recency
	default:
		return 0
	}
}

// ProjectResult is a project together with its score and position in a ranking.
type ProjectResult struct {
	Rank      int            `json:"rank"`
	Project   ProjectRecord  `json:"project"`
	Breakdown ScoreBreakdown `json:"score_breakdown"`
}

// Score returns the final score of the result.
func (r ProjectResult) Score() float64 {
	return r.Breakdown.FinalScore
}

// ProjectScoreView is the per-project breakdown payload returned by lookups.
type ProjectScoreView struct {
	ProjectID      int64          `json:"project_id"`
	ProjectName    string         `json:"project_name"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
}

// SyncResult summarizes a GitHub synchronization.
type SyncResult struct {
	TotalRepos int `json:"total_repos"`
	Created    int `json:"created"`
	Updated    int `json:"updated"`
	Skipped    int `json:"skipped"`
}

// ImportResult summarizes a seed file import.
type ImportResult struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Updated int `json:"updated"`
}
