// Package iocache persists projects, ranking history and GitHub responses.
package iocache

import (
	"sync"

	"github.com/huangsam/folio/internal/contract"
)

// StoreManagerImpl manages the project, history and response cache stores.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	projects     contract.ProjectStore
	history      contract.HistoryStore
	responses    contract.ResponseCache
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetProjectStore returns the ProjectStore.
func (mgr *StoreManagerImpl) GetProjectStore() contract.ProjectStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.projects
}

// GetHistoryStore returns the HistoryStore.
func (mgr *StoreManagerImpl) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}

// GetResponseCache returns the ResponseCache.
func (mgr *StoreManagerImpl) GetResponseCache() contract.ResponseCache {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.responses
}

// NewStoreManager builds a manager over already opened stores.
// Any of the stores may be nil.
func NewStoreManager(projects contract.ProjectStore, history contract.HistoryStore, responses contract.ResponseCache) *StoreManagerImpl {
	return &StoreManagerImpl{projects: projects, history: history, responses: responses}
}
