package repository

import (
	"fmt"
	"sort"
	"sync"

	"retail-insight/internal/model"

	"github.com/google/uuid"
)

// DatasetStore keeps uploaded datasets in memory. Uploads are
// session-scoped working data, so process-lifetime storage is the
// intended durability.
type DatasetStore struct {
	mu       sync.RWMutex
	datasets map[string]*model.Dataset
}

// NewDatasetStore creates an empty in-memory dataset store
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{
		datasets: make(map[string]*model.Dataset),
	}
}

// Save stores a dataset, assigning an ID if it has none, and returns
// the assigned ID.
func (s *DatasetStore) Save(ds *model.Dataset) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ds.ID == "" {
		ds.ID = uuid.NewString()
	}
	s.datasets[ds.ID] = ds
	return ds.ID
}

// Get returns the dataset with the given ID, or an error if it does
// not exist.
func (s *DatasetStore) Get(id string) (*model.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, ok := s.datasets[id]
	if !ok {
		return nil, fmt.Errorf("dataset %s not found", id)
	}
	return ds, nil
}

// List returns summaries of all stored datasets, newest first.
func (s *DatasetStore) List() []model.DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]model.DatasetInfo, 0, len(s.datasets))
	for _, ds := range s.datasets {
		infos = append(infos, ds.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos
}

// Delete removes a dataset and reports whether it existed.
func (s *DatasetStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.datasets[id]; !ok {
		return false
	}
	delete(s.datasets, id)
	return true
}
