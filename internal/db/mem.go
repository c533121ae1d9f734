package db

import (
	"context"
	"sort"
	"sync"

	"github.com/mithrel/sakura/pkg/api"
)

// MemStore keeps notes in a map. Used by tests and the mem:// DSN.
type MemStore struct {
	mu   sync.RWMutex
	byID map[string]api.Note
}

func NewMemStore() *MemStore {
	return &MemStore{byID: make(map[string]api.Note)}
}

func (m *MemStore) UpsertNote(ctx context.Context, n api.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[n.ID] = n
	return nil
}

func (m *MemStore) GetNote(ctx context.Context, id string) (api.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.byID[id]
	if !ok {
		return api.Note{}, ErrNotFound
	}
	return n, nil
}

func (m *MemStore) DeleteNote(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *MemStore) Snapshot(ctx context.Context, parentID string) ([]api.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]api.Note, 0, len(m.byID))
	for _, n := range m.byID {
		if parentID != "" && n.ParentID != parentID {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedTime != out[j].UpdatedTime {
			return out[i].UpdatedTime > out[j].UpdatedTime
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemStore) Close() error { return nil }
