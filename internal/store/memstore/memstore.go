// Package memstore provides an in-memory store implementation for testing.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/discochess/diner/internal/model"
	"github.com/discochess/diner/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is an in-memory store for testing.
type Store struct {
	mu          sync.RWMutex
	restaurants map[int64]model.Restaurant
	order       []int64
	puts        int
}

// New creates a new in-memory store seeded with the given restaurants.
func New(seed ...model.Restaurant) *Store {
	s := &Store{
		restaurants: make(map[int64]model.Restaurant),
	}
	s.upsert(seed)
	return s
}

// GetAll returns the stored restaurants in first-insertion order.
func (s *Store) GetAll(ctx context.Context) ([]model.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Restaurant, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.restaurants[id])
	}
	return out, nil
}

// PutAll upserts the restaurants by ID.
func (s *Store) PutAll(ctx context.Context, restaurants []model.Restaurant) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	s.upsertLocked(restaurants)
	return nil
}

// Len returns the number of stored restaurants.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.restaurants)
}

// Puts returns how many times PutAll has been called (for test assertions).
func (s *Store) Puts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puts
}

// IDs returns the stored IDs in first-insertion order.
func (s *Store) IDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}

func (s *Store) upsert(restaurants []model.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(restaurants)
}

func (s *Store) upsertLocked(restaurants []model.Restaurant) {
	for _, r := range restaurants {
		if _, ok := s.restaurants[r.ID]; !ok {
			s.order = append(s.order, r.ID)
		}
		s.restaurants[r.ID] = r
	}
}
