// Package cachedstore keeps an in-memory snapshot of another Store's
// collection so repeated reads skip the durable backend.
package cachedstore

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/discochess/diner/internal/model"
	"github.com/discochess/diner/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store wraps another Store with a read-through memory snapshot.
// The snapshot is dropped after every successful write.
type Store struct {
	underlying store.Store

	mu       sync.Mutex // guards snapshot
	snapshot []model.Restaurant

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a new cached store wrapping the given store.
func New(underlying store.Store) *Store {
	return &Store{underlying: underlying}
}

// GetAll returns the collection, checking the snapshot first.
// An empty collection is never cached.
func (s *Store) GetAll(ctx context.Context) ([]model.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.snapshot) > 0 {
		s.hits.Add(1)
		return slices.Clone(s.snapshot), nil
	}
	s.misses.Add(1)

	restaurants, err := s.underlying.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(restaurants) > 0 {
		s.snapshot = slices.Clone(restaurants)
	}
	return restaurants, nil
}

// PutAll writes through to the underlying store and invalidates the snapshot.
func (s *Store) PutAll(ctx context.Context, restaurants []model.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.underlying.PutAll(ctx, restaurants); err != nil {
		return err
	}
	s.snapshot = nil
	return nil
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.underlying.Close()
}

// Unwrap returns the underlying store.
func (s *Store) Unwrap() store.Store {
	return s.underlying
}

// Stats returns cache statistics.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	size := len(s.snapshot)
	s.mu.Unlock()
	return Stats{Hits: s.hits.Load(), Misses: s.misses.Load(), Size: size}
}

// Stats contains cache statistics.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int // Restaurants currently held in memory
}

// HitRate returns the cache hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}
