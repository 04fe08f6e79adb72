package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/internal/parquet"
)

// ExecuteHistoryExport exports ranking history from the store to Parquet files.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no ranking history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total ranking runs: %d\n", status.TotalRuns)
	fmt.Printf("Total score records: %d\n", status.TableSizes[projectScoresTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve ranking runs: %w", err)
	}
	scores, err := store.GetAllScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve project scores: %w", err)
	}

	runsFile := outputFile + ".ranking_runs.parquet"
	if err := parquet.WriteRankingRunsParquet(parquet.ConvertRankingRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write ranking runs: %w", err)
	}
	fmt.Printf("Exported %d ranking runs to: %s\n", len(runs), runsFile)

	scoresFile := outputFile + ".project_scores.parquet"
	if err := parquet.WriteProjectScoresParquet(parquet.ConvertProjectScoreRecords(scores), scoresFile); err != nil {
		return fmt.Errorf("failed to write project scores: %w", err)
	}
	fmt.Printf("Exported %d project score records to: %s\n", len(scores), scoresFile)

	return nil
}
