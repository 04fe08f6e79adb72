package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

// ResponseCacheImpl stores GitHub response bodies keyed by request URL.
type ResponseCacheImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
}

var _ contract.ResponseCache = &ResponseCacheImpl{} // Compile-time check

// NewResponseCache initializes and returns a new ResponseCache based on the backend type.
func NewResponseCache(backend schema.DatabaseBackend, connStr string) (contract.ResponseCache, error) {
	if err := validateTableName(githubCacheTable); err != nil {
		return nil, err
	}
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled caching
		return &ResponseCacheImpl{tableName: githubCacheTable, backend: backend}, nil
	}
	db, _, err := openMigratedDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	return &ResponseCacheImpl{db: db, tableName: githubCacheTable, backend: backend}, nil
}

// Get retrieves a cached body, its ETag and the time it was stored.
func (rc *ResponseCacheImpl) Get(key string) ([]byte, string, int64, error) {
	if rc.backend == schema.NoneBackend || rc.db == nil {
		return nil, "", 0, sql.ErrNoRows
	}

	var body []byte
	var etag string
	var ts int64

	query := fmt.Sprintf(`SELECT cache_body, cache_etag, cache_timestamp FROM %s WHERE cache_key = %s`,
		quoteTableName(rc.tableName, rc.backend), placeholder(rc.backend, 1))
	if err := rc.db.QueryRow(query, key).Scan(&body, &etag, &ts); err != nil {
		return nil, "", 0, err
	}
	return body, etag, ts, nil
}

// Set inserts or replaces a cached response.
func (rc *ResponseCacheImpl) Set(key string, body []byte, etag string, timestamp int64) error {
	if rc.backend == schema.NoneBackend || rc.db == nil {
		return nil
	}
	_, err := rc.db.Exec(rc.getUpsertQuery(), key, body, etag, timestamp)
	return err
}

// getUpsertQuery returns the UPSERT query for the backend.
func (rc *ResponseCacheImpl) getUpsertQuery() string {
	quotedTableName := quoteTableName(rc.tableName, rc.backend)
	switch rc.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_body, cache_etag, cache_timestamp) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE cache_body = new.cache_body, cache_etag = new.cache_etag, cache_timestamp = new.cache_timestamp`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_body, cache_etag, cache_timestamp) VALUES ($1, $2, $3, $4)
			ON CONFLICT (cache_key) DO UPDATE SET cache_body = EXCLUDED.cache_body, cache_etag = EXCLUDED.cache_etag, cache_timestamp = EXCLUDED.cache_timestamp`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (cache_key, cache_body, cache_etag, cache_timestamp) VALUES (?, ?, ?, ?)`, quotedTableName)
	}
}

// Close closes the underlying DB connection.
func (rc *ResponseCacheImpl) Close() error {
	if rc.db != nil {
		return rc.db.Close()
	}
	return nil
}

// GetStatus returns status information about the response cache.
func (rc *ResponseCacheImpl) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(rc.backend),
		Connected: rc.db != nil,
	}
	if rc.backend == schema.NoneBackend || rc.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(rc.tableName, rc.backend)
	if err := rc.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)).Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	var lastTs, oldestTs int64
	if err := rc.db.QueryRow(fmt.Sprintf("SELECT MAX(cache_timestamp) FROM %s", quotedTableName)).Scan(&lastTs); err != nil {
		return status, fmt.Errorf("failed to get last entry time: %w", err)
	}
	if err := rc.db.QueryRow(fmt.Sprintf("SELECT MIN(cache_timestamp) FROM %s", quotedTableName)).Scan(&oldestTs); err != nil {
		return status, fmt.Errorf("failed to get oldest entry time: %w", err)
	}
	status.LastEntryTime = time.Unix(lastTs, 0)
	status.OldestEntryTime = time.Unix(oldestTs, 0)

	return status, nil
}
