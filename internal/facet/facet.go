// Package facet derives the cuisine and neighborhood filter values from a
// restaurant collection.
package facet

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/discochess/diner/internal/model"
)

// Set is the pair of facets derived from one collection.
// A Set is never modified after it is published.
type Set struct {
	Cuisines      []string
	Neighborhoods []string
}

// Derive computes the facets of restaurants.
func Derive(restaurants []model.Restaurant) Set {
	cuisines := make([]string, len(restaurants))
	neighborhoods := make([]string, len(restaurants))
	for i, r := range restaurants {
		cuisines[i] = r.CuisineType
		neighborhoods[i] = r.Neighborhood
	}
	return Set{
		Cuisines:      Dedupe(cuisines),
		Neighborhoods: Dedupe(neighborhoods),
	}
}

// Dedupe returns the distinct values in order of first occurrence.
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Loader fetches the full collection when the index has never been filled.
type Loader func(ctx context.Context) ([]model.Restaurant, error)

// Index holds the facets of the most recently fetched collection.
// An Index is safe for concurrent use by multiple goroutines.
type Index struct {
	load    Loader
	current atomic.Pointer[Set]
}

// New creates an empty Index that fills itself through load on first read.
func New(load Loader) *Index {
	return &Index{load: load}
}

// Update replaces the facets with those of restaurants.
// Readers see either the previous or the new Set, never a mix.
func (x *Index) Update(restaurants []model.Restaurant) {
	set := Derive(restaurants)
	x.current.Store(&set)
}

// Snapshot returns the current facets and whether the index has been filled.
func (x *Index) Snapshot() (Set, bool) {
	set := x.current.Load()
	if set == nil {
		return Set{}, false
	}
	return Set{
		Cuisines:      slices.Clone(set.Cuisines),
		Neighborhoods: slices.Clone(set.Neighborhoods),
	}, true
}

// Cuisines returns the distinct cuisine types.
func (x *Index) Cuisines(ctx context.Context) ([]string, error) {
	set, err := x.get(ctx)
	if err != nil {
		return nil, err
	}
	return set.Cuisines, nil
}

// Neighborhoods returns the distinct neighborhoods.
func (x *Index) Neighborhoods(ctx context.Context) ([]string, error) {
	set, err := x.get(ctx)
	if err != nil {
		return nil, err
	}
	return set.Neighborhoods, nil
}

func (x *Index) get(ctx context.Context) (Set, error) {
	if set, ok := x.Snapshot(); ok {
		return set, nil
	}

	restaurants, err := x.load(ctx)
	if err != nil {
		return Set{}, err
	}
	x.Update(restaurants)

	set, _ := x.Snapshot()
	return set, nil
}
