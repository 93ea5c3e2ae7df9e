// Package diner provides offline-first access to restaurant listings.
//
// A Client reads the restaurant collection from a local persistent store and
// falls back to the remote API only while the store is empty, writing the
// fetched collection back so later requests work offline. On top of that
// collection it answers lookups by ID, cuisine and neighborhood filters, and
// the distinct cuisine and neighborhood values for filter controls.
//
// Example usage:
//
//	opts := []diner.Option{
//	    diner.WithSource(httpsource.New("http://localhost:1337")),
//	}
//	if st, err := sqlitestore.Open(ctx, "./data/diner.db"); err == nil {
//	    opts = append(opts, diner.WithStore(st))
//	}
//	client, err := diner.New(opts...)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	italian, err := client.RestaurantsByCuisineAndNeighborhood(ctx, "Italian", diner.All)
package diner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/discochess/diner/internal/coordinator"
	"github.com/discochess/diner/internal/facet"
	"github.com/discochess/diner/internal/query"
	"github.com/discochess/diner/internal/source"
	"github.com/discochess/diner/internal/stats"
	"github.com/discochess/diner/internal/store"
)

// All is the filter value meaning "do not filter on this axis".
const All = query.All

// Sentinel errors for well-defined error conditions.
var (
	// ErrNotFound indicates no restaurant has the requested ID.
	ErrNotFound = errors.New("diner: restaurant not found")

	// ErrClosed indicates the client has been closed.
	ErrClosed = errors.New("diner: client closed")

	// ErrNoSource indicates no remote source was provided.
	ErrNoSource = errors.New("diner: no source provided")

	// ErrNetwork indicates the remote API could not be reached or answered
	// with a non-success status.
	ErrNetwork = source.ErrNetwork

	// ErrDecode indicates the remote API returned a malformed body.
	ErrDecode = source.ErrDecode

	// ErrStorageUnavailable indicates durable local storage could not be opened.
	// The client never returns it from queries; store constructors do.
	ErrStorageUnavailable = store.ErrUnavailable
)

// Client provides access to the restaurant collection.
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	store       store.Store
	source      source.Source
	coordinator *coordinator.Coordinator
	facets      *facet.Index
	stats       stats.Collector
	logger      *zap.Logger
	closed      atomic.Bool
}

// New creates a new Client with the given options.
// A source is required; without a store the client runs network-only.
func New(opts ...Option) (*Client, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.source == nil {
		return nil, ErrNoSource
	}

	c := &Client{
		store:  cfg.store,
		source: cfg.source,
		stats:  cfg.stats,
		logger: cfg.logger,
	}
	c.coordinator = coordinator.New(cfg.source,
		coordinator.WithStore(cfg.store),
		coordinator.WithStats(cfg.stats),
		coordinator.WithLogger(cfg.logger.Named("coordinator")),
		coordinator.WithFetchTimeout(cfg.fetchTimeout),
	)
	c.facets = facet.New(c.coordinator.Restaurants)

	if cfg.store == nil {
		c.logger.Info("no local store configured, running network-only")
	}
	c.logger.Debug("client initialized",
		zap.Bool("offline", cfg.store != nil),
		zap.Duration("fetchTimeout", cfg.fetchTimeout),
	)

	return c, nil
}

// Restaurants returns the full collection, from the local store when it holds
// any data and from the remote source otherwise. The cuisine and neighborhood
// facets are refreshed from the returned collection.
func (c *Client) Restaurants(ctx context.Context) ([]Restaurant, error) {
	restaurants, err := c.restaurants(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(restaurants), nil
}

// RestaurantByID returns the restaurant with the given ID.
// Returns ErrNotFound if the collection has no such restaurant.
func (c *Client) RestaurantByID(ctx context.Context, id int64) (Restaurant, error) {
	restaurants, err := c.restaurants(ctx)
	if err != nil {
		return Restaurant{}, err
	}

	c.stats.IncCounter(stats.MetricLookups, 1)
	r, ok := query.ByID(restaurants, id)
	if !ok {
		c.stats.IncCounter(stats.MetricNotFound, 1)
		return Restaurant{}, fmt.Errorf("restaurant %d: %w", id, ErrNotFound)
	}
	return r, nil
}

// RestaurantsByCuisine returns the restaurants with exactly the given cuisine.
func (c *Client) RestaurantsByCuisine(ctx context.Context, cuisine string) ([]Restaurant, error) {
	restaurants, err := c.restaurants(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(restaurants, query.Criteria{Cuisine: cuisine, Neighborhood: All}), nil
}

// RestaurantsByNeighborhood returns the restaurants in exactly the given neighborhood.
func (c *Client) RestaurantsByNeighborhood(ctx context.Context, neighborhood string) ([]Restaurant, error) {
	restaurants, err := c.restaurants(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(restaurants, query.Criteria{Cuisine: All, Neighborhood: neighborhood}), nil
}

// RestaurantsByCuisineAndNeighborhood returns the restaurants matching both
// values. Passing All for either value leaves that axis unfiltered.
func (c *Client) RestaurantsByCuisineAndNeighborhood(ctx context.Context, cuisine, neighborhood string) ([]Restaurant, error) {
	restaurants, err := c.restaurants(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(restaurants, query.Criteria{Cuisine: cuisine, Neighborhood: neighborhood}), nil
}

// Cuisines returns the distinct cuisine types in order of first appearance.
// The first call fetches the collection if no request has done so yet.
func (c *Client) Cuisines(ctx context.Context) ([]string, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	return c.facets.Cuisines(ctx)
}

// Neighborhoods returns the distinct neighborhoods in order of first appearance.
// The first call fetches the collection if no request has done so yet.
func (c *Client) Neighborhoods(ctx context.Context) ([]string, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	return c.facets.Neighborhoods(ctx)
}

// Close releases all resources associated with the client.
// After Close, the client should not be used.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	var errs []error
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing store: %w", err))
		}
	}
	if closer, ok := c.source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing source: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Store returns the local store used by this client, or nil when network-only.
func (c *Client) Store() store.Store {
	return c.store
}

// restaurants runs the coordinated read and refreshes the facets.
// The returned slice is shared and must not be modified.
func (c *Client) restaurants(ctx context.Context) ([]Restaurant, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	c.stats.IncCounter(stats.MetricRequests, 1)
	restaurants, err := c.coordinator.Restaurants(ctx)
	if err != nil {
		return nil, err
	}

	c.facets.Update(restaurants)
	c.stats.SetGauge(stats.MetricCollectionSize, int64(len(restaurants)))
	return restaurants, nil
}
