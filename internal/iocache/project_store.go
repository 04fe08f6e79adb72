package iocache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

// projectColumns lists the selectable project columns in scan order.
const projectColumns = "id, github_id, name, description, language, url, topics, stars, forks, watchers, featured, created_at, updated_at, synced_at"

// ProjectStoreImpl persists portfolio projects in a SQL database.
type ProjectStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	version uint
}

var _ contract.ProjectStore = &ProjectStoreImpl{} // Compile-time check

// NewProjectStore opens the project store for the backend and applies migrations.
func NewProjectStore(backend schema.DatabaseBackend, connStr string) (contract.ProjectStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled persistence
		return &ProjectStoreImpl{backend: backend}, nil
	}
	db, version, err := openMigratedDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	return &ProjectStoreImpl{db: db, backend: backend, version: version}, nil
}

func (ps *ProjectStoreImpl) disabled() bool {
	return ps.backend == schema.NoneBackend || ps.db == nil
}

func (ps *ProjectStoreImpl) table() string {
	return quoteTableName(projectsTable, ps.backend)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProject reads one project row in projectColumns order.
func scanProject(row rowScanner) (schema.ProjectRecord, error) {
	var p schema.ProjectRecord
	var githubID sql.NullInt64
	var topics string
	var createdAt, updatedAt, syncedAt nullTime

	if err := row.Scan(&p.ID, &githubID, &p.Name, &p.Description, &p.Language, &p.URL, &topics,
		&p.Stars, &p.Forks, &p.Watchers, &p.Featured, &createdAt, &updatedAt, &syncedAt); err != nil {
		return schema.ProjectRecord{}, err
	}
	p.GitHubID = githubID.Int64
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	p.SyncedAt = syncedAt.Time

	if topics != "" {
		if err := json.Unmarshal([]byte(topics), &p.Topics); err != nil {
			return schema.ProjectRecord{}, fmt.Errorf("failed to decode topics for %q: %w", p.Name, err)
		}
	}
	if len(p.Topics) == 0 {
		p.Topics = nil
	}
	return p, nil
}

// List returns every stored project ordered by id.
func (ps *ProjectStoreImpl) List(ctx context.Context) ([]schema.ProjectRecord, error) {
	if ps.disabled() {
		return []schema.ProjectRecord{}, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", projectColumns, ps.table())
	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := []schema.ProjectRecord{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}
	return projects, nil
}

// getBy looks up one project by a single column.
func (ps *ProjectStoreImpl) getBy(ctx context.Context, column string, value any) (schema.ProjectRecord, error) {
	if ps.disabled() {
		return schema.ProjectRecord{}, contract.ErrProjectNotFound
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s", projectColumns, ps.table(), column, placeholder(ps.backend, 1))
	p, err := scanProject(ps.db.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return schema.ProjectRecord{}, fmt.Errorf("%w: %s=%v", contract.ErrProjectNotFound, column, value)
	}
	if err != nil {
		return schema.ProjectRecord{}, fmt.Errorf("failed to get project by %s: %w", column, err)
	}
	return p, nil
}

// Get returns the project with the given id.
func (ps *ProjectStoreImpl) Get(ctx context.Context, id int64) (schema.ProjectRecord, error) {
	return ps.getBy(ctx, "id", id)
}

// GetByName returns the project with the given name.
func (ps *ProjectStoreImpl) GetByName(ctx context.Context, name string) (schema.ProjectRecord, error) {
	return ps.getBy(ctx, "name", name)
}

// GetByGitHubID returns the project with the given GitHub repository id.
func (ps *ProjectStoreImpl) GetByGitHubID(ctx context.Context, githubID int64) (schema.ProjectRecord, error) {
	return ps.getBy(ctx, "github_id", githubID)
}

// Upsert inserts a project or updates the existing one with the same GitHub id,
// falling back to the name when the GitHub id is unknown.
func (ps *ProjectStoreImpl) Upsert(ctx context.Context, p schema.ProjectRecord) (int64, bool, error) {
	if ps.disabled() {
		return 0, false, nil
	}
	if strings.TrimSpace(p.Name) == "" {
		return 0, false, errors.New("project name cannot be empty")
	}

	existing, err := ps.findExisting(ctx, p)
	switch {
	case errors.Is(err, contract.ErrProjectNotFound):
		id, err := ps.insert(ctx, p)
		return id, true, err
	case err != nil:
		return 0, false, err
	}

	if err := ps.update(ctx, existing.ID, p); err != nil {
		return 0, false, err
	}
	return existing.ID, false, nil
}

func (ps *ProjectStoreImpl) findExisting(ctx context.Context, p schema.ProjectRecord) (schema.ProjectRecord, error) {
	if p.GitHubID != 0 {
		existing, err := ps.GetByGitHubID(ctx, p.GitHubID)
		if !errors.Is(err, contract.ErrProjectNotFound) {
			return existing, err
		}
	}
	return ps.GetByName(ctx, p.Name)
}

// projectArgs returns the writable column values of p in write order.
func (ps *ProjectStoreImpl) projectArgs(p schema.ProjectRecord) ([]any, error) {
	topics := p.Topics
	if topics == nil {
		topics = []string{}
	}
	topicsJSON, err := json.Marshal(topics)
	if err != nil {
		return nil, fmt.Errorf("failed to encode topics: %w", err)
	}
	var githubID any
	if p.GitHubID != 0 {
		githubID = p.GitHubID
	}
	return []any{
		githubID, p.Name, p.Description, p.Language, p.URL, string(topicsJSON),
		p.Stars, p.Forks, p.Watchers, p.Featured,
		formatTime(p.CreatedAt, ps.backend), formatTime(p.UpdatedAt, ps.backend), formatTime(p.SyncedAt, ps.backend),
	}, nil
}

const writeColumns = "github_id, name, description, language, url, topics, stars, forks, watchers, featured, created_at, updated_at, synced_at"

func (ps *ProjectStoreImpl) insert(ctx context.Context, p schema.ProjectRecord) (int64, error) {
	args, err := ps.projectArgs(p)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", ps.table(), writeColumns, placeholders(ps.backend, len(args)))

	var id int64
	switch ps.backend {
	case schema.PostgreSQLBackend:
		err = ps.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id)
	default: // SQLite and MySQL
		var result sql.Result
		result, err = ps.db.ExecContext(ctx, query, args...)
		if err == nil {
			id, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert project %q: %w", p.Name, err)
	}
	return id, nil
}

func (ps *ProjectStoreImpl) update(ctx context.Context, id int64, p schema.ProjectRecord) error {
	args, err := ps.projectArgs(p)
	if err != nil {
		return err
	}

	columns := strings.Split(writeColumns, ", ")
	sets := make([]string, len(columns))
	for i, c := range columns {
		sets[i] = fmt.Sprintf("%s = %s", c, placeholder(ps.backend, i+1))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s", ps.table(), strings.Join(sets, ", "), placeholder(ps.backend, len(columns)+1))

	if _, err := ps.db.ExecContext(ctx, query, append(args, id)...); err != nil {
		return fmt.Errorf("failed to update project %q: %w", p.Name, err)
	}
	return nil
}

// Delete removes the project with the given id.
func (ps *ProjectStoreImpl) Delete(ctx context.Context, id int64) error {
	if ps.disabled() {
		return nil
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", ps.table(), placeholder(ps.backend, 1))
	result, err := ps.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id=%d", contract.ErrProjectNotFound, id)
	}
	return nil
}

// Close closes the underlying DB connection.
func (ps *ProjectStoreImpl) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

// GetStatus returns status information about the project store.
func (ps *ProjectStoreImpl) GetStatus() (schema.ProjectStoreStatus, error) {
	status := schema.ProjectStoreStatus{
		Backend:       string(ps.backend),
		Connected:     ps.db != nil,
		SchemaVersion: ps.version,
	}
	if ps.disabled() {
		return status, nil
	}

	table := ps.table()
	if err := ps.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&status.TotalProjects); err != nil {
		return status, fmt.Errorf("failed to get total projects: %w", err)
	}
	if status.TotalProjects == 0 {
		return status, nil
	}

	featuredQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE featured = %s", table, placeholder(ps.backend, 1))
	if err := ps.db.QueryRow(featuredQuery, true).Scan(&status.FeaturedCount); err != nil {
		return status, fmt.Errorf("failed to get featured count: %w", err)
	}

	var lastSync, newestUpdate nullTime
	if err := ps.db.QueryRow(fmt.Sprintf("SELECT MAX(synced_at) FROM %s", table)).Scan(&lastSync); err != nil {
		return status, fmt.Errorf("failed to get last sync time: %w", err)
	}
	if err := ps.db.QueryRow(fmt.Sprintf("SELECT MAX(updated_at) FROM %s", table)).Scan(&newestUpdate); err != nil {
		return status, fmt.Errorf("failed to get newest update time: %w", err)
	}
	status.LastSyncTime = lastSync.Time
	status.NewestUpdatedAt = newestUpdate.Time

	switch ps.backend {
	case schema.SQLiteBackend:
		status.TableSizeBytes = sqliteSizeBytes(ps.db)
	case schema.PostgreSQLBackend:
		row := ps.db.QueryRow("SELECT pg_total_relation_size($1)", projectsTable)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.TotalProjects) * 1000 // Fallback rough estimate
		}
	default:
		row := ps.db.QueryRow("SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?", projectsTable)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.TotalProjects) * 1000 // Fallback rough estimate
		}
	}

	return status, nil
}

