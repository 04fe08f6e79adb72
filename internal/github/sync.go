package github

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/huangsam/folio/core/algo"
	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

// ToProjectRecord maps a GitHub repository and its topics onto a project.
// UpdatedAt keeps GitHub's timestamp so recency reflects repository activity.
func ToProjectRecord(repo schema.GitHubRepo, topics []string, syncedAt time.Time) schema.ProjectRecord {
	if topics == nil {
		topics = repo.Topics
	}
	return schema.ProjectRecord{
		GitHubID:    repo.ID,
		Name:        repo.Name,
		Description: repo.Description,
		Language:    repo.Language,
		URL:         repo.HTMLURL,
		Topics:      topics,
		Stars:       repo.StargazersCount,
		Forks:       repo.ForksCount,
		Watchers:    repo.WatchersCount,
		Featured:    algo.IsFeatured(repo.Name, topics, repo.StargazersCount),
		CreatedAt:   repo.CreatedAt.UTC(),
		UpdatedAt:   repo.UpdatedAt.UTC(),
		SyncedAt:    syncedAt.UTC(),
	}
}

// topicResult carries the outcome of one topic lookup back to Sync.
type topicResult struct {
	index  int
	topics []string
	err    error
}

// Sync pulls the public repositories of user into store.
// Topic lookups run on a bounded pool of workers; writes happen in listing order.
func Sync(ctx context.Context, client contract.GitHubClient, store contract.ProjectStore, user string, workers int, now time.Time) (schema.SyncResult, error) {
	var result schema.SyncResult

	repos, err := client.ListRepos(ctx, user)
	if err != nil {
		return result, err
	}

	public := make([]schema.GitHubRepo, 0, len(repos))
	for _, r := range repos {
		if !r.Private {
			public = append(public, r)
		}
	}
	result.TotalRepos = len(public)

	topics := fetchTopics(ctx, client, user, public, max(workers, 1))
	for i, repo := range public {
		tr := topics[i]
		if tr.err != nil {
			if isFatalSyncError(tr.err) {
				return result, tr.err
			}
			contract.LogWarn(fmt.Sprintf("Skipping repository %s", repo.Name), tr.err)
			result.Skipped++
			continue
		}

		_, created, err := store.Upsert(ctx, ToProjectRecord(repo, tr.topics, now))
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping repository %s", repo.Name), err)
			result.Skipped++
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	return result, nil
}

// fetchTopics resolves topics for every repo, reusing the listing payload when it has them.
func fetchTopics(ctx context.Context, client contract.GitHubClient, user string, repos []schema.GitHubRepo, workers int) []topicResult {
	indexCh := make(chan int, len(repos))
	resultCh := make(chan topicResult, len(repos))
	var wg sync.WaitGroup

	for range workers {
		wg.Go(func() {
			for i := range indexCh {
				repo := repos[i]
				if len(repo.Topics) > 0 {
					resultCh <- topicResult{index: i, topics: repo.Topics}
					continue
				}
				owner := repo.Owner.Login
				if owner == "" {
					owner = user
				}
				names, err := client.ListTopics(ctx, owner, repo.Name)
				if names == nil {
					names = []string{}
				}
				resultCh <- topicResult{index: i, topics: names, err: err}
			}
		})
	}

	for i := range repos {
		indexCh <- i
	}
	close(indexCh)

	wg.Wait()
	close(resultCh)

	results := make([]topicResult, len(repos))
	for r := range resultCh {
		results[r.index] = r
	}
	return results
}

// isFatalSyncError reports errors that will fail every remaining repository too.
func isFatalSyncError(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
