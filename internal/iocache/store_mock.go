package iocache

import (
	"context"
	"time"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetProjectStore implements the StoreManager interface.
func (m *MockStoreManager) GetProjectStore() contract.ProjectStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ProjectStore)
	return store
}

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// GetResponseCache implements the StoreManager interface.
func (m *MockStoreManager) GetResponseCache() contract.ResponseCache {
	ret := m.Called()
	cache, _ := ret.Get(0).(contract.ResponseCache)
	return cache
}

// MockProjectStore is a mock implementation of ProjectStore for testing.
type MockProjectStore struct {
	mock.Mock
}

var _ contract.ProjectStore = &MockProjectStore{} // Compile-time check

// List implements the ProjectStore interface.
func (m *MockProjectStore) List(ctx context.Context) ([]schema.ProjectRecord, error) {
	args := m.Called(ctx)
	projects, _ := args.Get(0).([]schema.ProjectRecord)
	return projects, args.Error(1)
}

// Get implements the ProjectStore interface.
func (m *MockProjectStore) Get(ctx context.Context, id int64) (schema.ProjectRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(schema.ProjectRecord), args.Error(1)
}

// GetByName implements the ProjectStore interface.
func (m *MockProjectStore) GetByName(ctx context.Context, name string) (schema.ProjectRecord, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(schema.ProjectRecord), args.Error(1)
}

// GetByGitHubID implements the ProjectStore interface.
func (m *MockProjectStore) GetByGitHubID(ctx context.Context, githubID int64) (schema.ProjectRecord, error) {
	args := m.Called(ctx, githubID)
	return args.Get(0).(schema.ProjectRecord), args.Error(1)
}

// Upsert implements the ProjectStore interface.
func (m *MockProjectStore) Upsert(ctx context.Context, p schema.ProjectRecord) (int64, bool, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

// Delete implements the ProjectStore interface.
func (m *MockProjectStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GetStatus implements the ProjectStore interface.
func (m *MockProjectStore) GetStatus() (schema.ProjectStoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.ProjectStoreStatus), args.Error(1)
}

// Close implements the ProjectStore interface.
func (m *MockProjectStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, string, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.String(1), args.Error(2)
}

// RecordScore implements the HistoryStore interface.
func (m *MockHistoryStore) RecordScore(runID int64, result schema.ProjectResult) error {
	args := m.Called(runID, result)
	return args.Error(0)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, totalProjects int) error {
	args := m.Called(runID, endTime, totalProjects)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.RankingRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RankingRunRecord)
	return runs, args.Error(1)
}

// GetAllScores implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllScores() ([]schema.ProjectScoreRecord, error) {
	args := m.Called()
	scores, _ := args.Get(0).([]schema.ProjectScoreRecord)
	return scores, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockResponseCache is a mock implementation of ResponseCache for testing.
type MockResponseCache struct {
	mock.Mock
}

var _ contract.ResponseCache = &MockResponseCache{} // Compile-time check

// Get implements the ResponseCache interface.
func (m *MockResponseCache) Get(key string) ([]byte, string, int64, error) {
	args := m.Called(key)
	body, _ := args.Get(0).([]byte)
	return body, args.String(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the ResponseCache interface.
func (m *MockResponseCache) Set(key string, body []byte, etag string, timestamp int64) error {
	args := m.Called(key, body, etag, timestamp)
	return args.Error(0)
}

// GetStatus implements the ResponseCache interface.
func (m *MockResponseCache) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// Close implements the ResponseCache interface.
func (m *MockResponseCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
