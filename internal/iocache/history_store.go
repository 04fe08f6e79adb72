package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	now     func() time.Time
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend, now: time.Now}, nil
	}
	db, _, err := openMigratedDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	return &HistoryStoreImpl{db: db, backend: backend, now: time.Now}, nil
}

func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun creates a new ranking run and returns its id and unique key.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, string, error) {
	if hs.disabled() {
		return 0, "", nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, "", fmt.Errorf("failed to marshal config params: %w", err)
	}

	runKey := uuid.NewString()
	quotedTableName := quoteTableName(rankingRunsTable, hs.backend)
	args := []any{runKey, formatTime(startTime, hs.backend), string(configJSON)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_key, start_time, config_params) VALUES ($1, $2, $3) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_key, start_time, config_params) VALUES (?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, "", fmt.Errorf("failed to insert ranking run: %w", err)
	}

	return runID, runKey, nil
}

// RecordScore stores the score of one ranked project.
func (hs *HistoryStoreImpl) RecordScore(runID int64, result schema.ProjectResult) error {
	if hs.disabled() {
		return nil
	}

	b := result.Breakdown
	query := fmt.Sprintf(`INSERT INTO %s (run_id, project_name, project_id, rank_position, scored_at,
		technical_complexity, github_metrics, recency, final_score, score_label) VALUES (%s)`,
		quoteTableName(projectScoresTable, hs.backend), placeholders(hs.backend, 10))

	_, err := hs.db.Exec(query,
		runID, result.Project.Name, result.Project.ID, result.Rank, formatTime(hs.now(), hs.backend),
		b.TechnicalComplexity, b.GitHubMetrics, b.Recency, b.FinalScore, schema.GetPlainLabel(b.FinalScore))
	if err != nil {
		return fmt.Errorf("failed to insert score for %q: %w", result.Project.Name, err)
	}
	return nil
}

// EndRun updates the ranking run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalProjects int) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(rankingRunsTable, hs.backend)
	var startTime nullTime
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholder(hs.backend, 1))
	if err := hs.db.QueryRow(query, runID).Scan(&startTime); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime.Time).Milliseconds()
	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_projects = %s WHERE run_id = %s`,
		quotedTableName, placeholder(hs.backend, 1), placeholder(hs.backend, 2), placeholder(hs.backend, 3), placeholder(hs.backend, 4))
	if _, err := hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs, totalProjects, runID); err != nil {
		return fmt.Errorf("failed to update ranking run: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.disabled() {
		return status, nil
	}

	runsTable := quoteTableName(rankingRunsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var lastRun, oldestRun nullTime
		lastRunQuery := fmt.Sprintf("SELECT run_id, run_key, start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)
		if err := hs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &status.LastRunKey, &lastRun); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = lastRun.Time

		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable)
		if err := hs.db.QueryRow(oldestRunQuery).Scan(&oldestRun); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRun.Time

		scoredQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_projects), 0) FROM %s", runsTable)
		if err := hs.db.QueryRow(scoredQuery).Scan(&status.TotalScored); err != nil {
			return status, fmt.Errorf("failed to get total projects scored: %w", err)
		}
	}

	for _, table := range []string{rankingRunsTable, projectScoresTable} {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all ranking runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RankingRunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT run_id, run_key, start_time, end_time, run_duration_ms, total_projects, config_params FROM %s ORDER BY run_id",
		quoteTableName(rankingRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RankingRunRecord
	for rows.Next() {
		var record schema.RankingRunRecord
		var startTime, endTime nullTime
		if err := rows.Scan(&record.RunID, &record.RunKey, &startTime, &endTime, &record.RunDurationMs, &record.TotalProjects, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan ranking run: %w", err)
		}
		record.StartTime = startTime.Time
		if endTime.Valid {
			end := endTime.Time
			record.EndTime = &end
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ranking runs: %w", err)
	}
	return results, nil
}

// GetAllScores retrieves all recorded project scores from the store.
func (hs *HistoryStoreImpl) GetAllScores() ([]schema.ProjectScoreRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, project_name, project_id, rank_position, scored_at,
		technical_complexity, github_metrics, recency, final_score, score_label
		FROM %s ORDER BY run_id, rank_position`, quoteTableName(projectScoresTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query project scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ProjectScoreRecord
	for rows.Next() {
		var record schema.ProjectScoreRecord
		var scoredAt nullTime
		if err := rows.Scan(&record.RunID, &record.ProjectName, &record.ProjectID, &record.Rank, &scoredAt,
			&record.TechnicalComplexity, &record.GitHubMetrics, &record.Recency, &record.FinalScore, &record.ScoreLabel); err != nil {
			return nil, fmt.Errorf("failed to scan project score: %w", err)
		}
		record.ScoredAt = scoredAt.Time
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project scores: %w", err)
	}
	return results, nil
}
