package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/playcard/internal/domain/model"
)

// MemoryStore is a Store backed by a slice plus an id index.
type MemoryStore struct {
	mu    sync.RWMutex
	games []*model.Game
	index map[string]int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[string]int)}
}

// Append implements Store.
func (s *MemoryStore) Append(_ context.Context, g *model.Game) error {
	if g == nil {
		return ErrNilGame
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[g.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, g.ID)
	}
	s.index[g.ID] = len(s.games)
	s.games = append(s.games, g)
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.games[i], nil
}

// List implements Store. The returned slice is a fresh copy of the index;
// the games themselves are shared.
func (s *MemoryStore) List(_ context.Context) []*model.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Game, len(s.games))
	copy(out, s.games)
	return out
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
