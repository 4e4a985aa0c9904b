package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aretw0/stagedup/pkg/domain"
)

// Store implements ports.StageStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.StageSnapshot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.StageSnapshot),
	}
}

// Save persists a copy of the snapshot, so later edits by the caller do not leak in.
func (s *Store) Save(ctx context.Context, stageID string, snap *domain.StageSnapshot) error {
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}
	copied := snap.Clone()
	copied.ID = stageID

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[stageID] = copied
	return nil
}

// Load retrieves a copy of the snapshot.
func (s *Store) Load(ctx context.Context, stageID string) (*domain.StageSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[stageID]
	if !ok {
		return nil, domain.ErrStageNotFound
	}
	return snap.Clone(), nil
}

// Delete removes the stage.
func (s *Store) Delete(ctx context.Context, stageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, stageID)
	return nil
}

// List returns stored stage IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
