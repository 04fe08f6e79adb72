// Package contract provides interfaces and shared utilities for folio's internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/folio/schema"
)

// ErrProjectNotFound is returned when a project lookup has no match.
var ErrProjectNotFound = errors.New("project not found")

// ProjectStore defines the persistence operations for portfolio projects.
// This allows the core logic to be tested without a real database.
type ProjectStore interface {
	// List returns every stored project ordered by id.
	List(ctx context.Context) ([]schema.ProjectRecord, error)

	// Get returns the project with the given id or ErrProjectNotFound.
	Get(ctx context.Context, id int64) (schema.ProjectRecord, error)

	// GetByName returns the project with the given name or ErrProjectNotFound.
	GetByName(ctx context.Context, name string) (schema.ProjectRecord, error)

	// GetByGitHubID returns the project with the given GitHub repository id or ErrProjectNotFound.
	GetByGitHubID(ctx context.Context, githubID int64) (schema.ProjectRecord, error)

	// Upsert inserts or updates a project and reports whether it was created.
	Upsert(ctx context.Context, p schema.ProjectRecord) (int64, bool, error)

	// Delete removes the project with the given id.
	Delete(ctx context.Context, id int64) error

	GetStatus() (schema.ProjectStoreStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking ranking runs and their scores.
type HistoryStore interface {
	// BeginRun creates a new ranking run and returns its id and unique key.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, string, error)

	// RecordScore stores the score of one ranked project.
	RecordScore(runID int64, result schema.ProjectResult) error

	// EndRun updates the ranking run with completion data.
	EndRun(runID int64, endTime time.Time, totalProjects int) error

	GetStatus() (schema.HistoryStatus, error)
	GetAllRuns() ([]schema.RankingRunRecord, error)
	GetAllScores() ([]schema.ProjectScoreRecord, error)
	Close() error
}

// ResponseCache stores HTTP response bodies with their ETag for revalidation.
type ResponseCache interface {
	Get(key string) ([]byte, string, int64, error)
	Set(key string, body []byte, etag string, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// StoreManager defines the interface for managing the stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetProjectStore() ProjectStore
	GetHistoryStore() HistoryStore
	GetResponseCache() ResponseCache
}

// GitHubClient defines the GitHub REST operations used by sync.
type GitHubClient interface {
	// ListRepos returns every public repository owned by user.
	ListRepos(ctx context.Context, user string) ([]schema.GitHubRepo, error)

	// ListTopics returns the topics of a single repository.
	ListTopics(ctx context.Context, owner, repo string) ([]string, error)
}
