// Package core has core logic for loading, scoring and ranking portfolio projects.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/internal/github"
	"github.com/huangsam/folio/internal/importer"
	"github.com/huangsam/folio/internal/outwriter"
	"github.com/huangsam/folio/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ErrStoreUnavailable is returned when a command needs a store the manager lacks.
var ErrStoreUnavailable = errors.New("project store is not available")

// writer renders every command's results.
var writer = outwriter.NewOutWriter()

// ExecuteRank ranks every stored project and prints the results.
// It serves as the main entry point for the 'rank' command.
func ExecuteRank(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	results, total, err := GetRankResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return writer.WriteRanking(results, total, cfg, duration)
}

// ExecuteFeatured prints the projects selected for the portfolio landing page.
// It serves as the main entry point for the 'featured' command.
func ExecuteFeatured(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	results, total, err := GetFeaturedResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return writer.WriteRanking(results, total, cfg, duration)
}

// ExecuteScore prints the score breakdown of the project named by cfg.Target.
// It serves as the main entry point for the 'score' command.
func ExecuteScore(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	view, err := GetProjectScore(ctx, cfg, mgr, cfg.Target)
	if err != nil {
		return err
	}
	return writer.WriteBreakdown(view, cfg)
}

// ExecuteMetrics prints the scoring formula, its components and keyword tables.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return writer.WriteMetrics(cfg)
}

// ExecuteSync pulls the public repositories of cfg.GitHubUser into the project store.
func ExecuteSync(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.DBBackend == schema.NoneBackend {
		return fmt.Errorf("sync requires a persistent backend (got %s)", cfg.DBBackend)
	}
	if cfg.GitHubUser == "" {
		return errors.New("github user is required for sync")
	}
	store, err := projectStore(mgr)
	if err != nil {
		return err
	}

	opts := github.Options{
		BaseURL: cfg.GitHubAPIURL,
		Token:   cfg.GitHubToken,
		Rate:    cfg.GitHubRate,
	}
	if cfg.GitHubCache {
		opts.Cache = mgr.GetResponseCache()
	}
	client := github.NewClient(opts)

	if !shouldSuppressHeader(ctx) {
		logSyncHeader(cfg)
	}
	start := time.Now()
	result, err := github.Sync(ctx, client, store, cfg.GitHubUser, cfg.Workers, start.UTC())
	if err != nil {
		return fmt.Errorf("sync failed for %s: %w", cfg.GitHubUser, err)
	}
	printSyncResult(cfg.GitHubUser, result, time.Since(start))
	return nil
}

// ExecuteImport loads the seed file at cfg.Target into the project store.
// With cfg.Watch, it keeps re-importing the file on every change until ctx is done.
func ExecuteImport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	if cfg.Target == "" {
		return errors.New("a seed file path is required for import")
	}
	store, err := projectStore(mgr)
	if err != nil {
		return err
	}

	records, err := importer.Load(cfg.Target)
	if err != nil {
		return err
	}
	result, err := importer.Import(ctx, store, records)
	if err != nil {
		return err
	}
	printImportResult(cfg.Target, result)

	if !cfg.Watch {
		return nil
	}
	return importer.Watch(ctx, cfg.Target, func(records []schema.ProjectRecord) {
		result, err := importer.Import(ctx, store, records)
		if err != nil {
			contract.LogWarn("Re-import failed", err)
			return
		}
		printImportResult(cfg.Target, result)
	})
}

// projectStore returns the project store of mgr or ErrStoreUnavailable.
func projectStore(mgr contract.StoreManager) (contract.ProjectStore, error) {
	if mgr == nil {
		return nil, ErrStoreUnavailable
	}
	store := mgr.GetProjectStore()
	if store == nil {
		return nil, ErrStoreUnavailable
	}
	return store, nil
}
