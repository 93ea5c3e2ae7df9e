// Package memsource provides an in-memory source implementation for testing.
package memsource

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/discochess/diner/internal/model"
	"github.com/discochess/diner/internal/source"
)

// Compile-time check that Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Source serves a fixed collection and counts fetches.
type Source struct {
	mu          sync.RWMutex
	restaurants []model.Restaurant
	err         error
	gate        chan struct{}

	calls atomic.Int64
}

// New creates a source serving the given restaurants.
func New(restaurants ...model.Restaurant) *Source {
	return &Source{restaurants: slices.Clone(restaurants)}
}

// SetRestaurants replaces the served collection.
func (s *Source) SetRestaurants(restaurants []model.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restaurants = slices.Clone(restaurants)
}

// SetError makes subsequent fetches fail with err. A nil err clears it.
func (s *Source) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Block makes subsequent fetches wait until the returned release func is
// called or the fetch context ends.
func (s *Source) Block() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { close(gate) })
	}
}

// Calls returns how many times FetchAll has been called.
func (s *Source) Calls() int {
	return int(s.calls.Load())
}

// FetchAll returns a copy of the configured collection or error.
func (s *Source) FetchAll(ctx context.Context) ([]model.Restaurant, error) {
	s.calls.Add(1)

	s.mu.RLock()
	gate := s.gate
	s.mu.RUnlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	return slices.Clone(s.restaurants), nil
}
