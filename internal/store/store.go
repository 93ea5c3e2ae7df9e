// Package store defines the local persistent store used to keep restaurant
// listings available offline.
package store

import (
	"context"
	"errors"

	"github.com/discochess/diner/internal/model"
)

// ErrUnavailable is returned when durable local storage cannot be opened or
// used on this platform. Callers treat it as a cache miss.
var ErrUnavailable = errors.New("store: storage unavailable")

// Store defines the interface for persistent storage backends.
// A Store holds one record collection keyed by restaurant ID.
type Store interface {
	// GetAll returns every stored restaurant.
	// An empty, never-populated store returns an empty slice and no error.
	GetAll(ctx context.Context) ([]model.Restaurant, error)

	// PutAll upserts each restaurant by ID. Records absent from the given
	// slice are left in place.
	PutAll(ctx context.Context, restaurants []model.Restaurant) error

	// Close releases any resources held by the store.
	Close() error
}
