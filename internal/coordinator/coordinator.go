// Package coordinator keeps the local store and the remote source in sync and
// decides which one answers a collection request.
//
// The local store is authoritative whenever it holds any data: there is no
// TTL and no background refresh. Only an empty (or unusable) store sends a
// request to the remote source, and a successful remote fetch is written back
// to the store before the collection is returned.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/discochess/diner/internal/model"
	"github.com/discochess/diner/internal/source"
	"github.com/discochess/diner/internal/stats"
	"github.com/discochess/diner/internal/store"
)

// DefaultFetchTimeout bounds a remote fetch when no timeout is configured.
const DefaultFetchTimeout = 10 * time.Second

// fetchKey is the single singleflight key: there is one collection.
const fetchKey = "restaurants"

// Coordinator answers "all restaurants" requests from the store or the source.
// A Coordinator is safe for concurrent use by multiple goroutines.
type Coordinator struct {
	store        store.Store
	source       source.Source
	stats        stats.Collector
	logger       *zap.Logger
	fetchTimeout time.Duration

	inflight singleflight.Group
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithStore sets the local store. Without one the coordinator runs network-only.
func WithStore(s store.Store) Option {
	return func(c *Coordinator) {
		c.store = s
	}
}

// WithStats sets the stats collector.
func WithStats(s stats.Collector) Option {
	return func(c *Coordinator) {
		if s != nil {
			c.stats = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFetchTimeout bounds each remote fetch. Zero or negative disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.fetchTimeout = d
	}
}

// New creates a Coordinator reading from src on a store miss.
func New(src source.Source, opts ...Option) *Coordinator {
	c := &Coordinator{
		source:       src,
		stats:        stats.NewNoop(),
		logger:       zap.NewNop(),
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restaurants returns the full collection: the stored records when the store
// holds any, otherwise a fresh remote fetch that is then written to the store.
// Store failures are logged and treated as a miss; remote failures are returned.
func (c *Coordinator) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrNetwork, err)
	}

	local, ok, err := c.readLocal(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		c.stats.IncCounter(stats.MetricStoreHits, 1)
		c.logger.Debug("serving from local store", zap.Int("count", len(local)))
		return local, nil
	}
	c.stats.IncCounter(stats.MetricStoreMisses, 1)

	// Concurrent misses share one fetch. The shared fetch is detached from
	// any single caller's cancellation and bounded by fetchTimeout instead.
	ch := c.inflight.DoChan(fetchKey, func() (any, error) {
		return c.fetchAndStore(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.Debug("joined in-flight remote fetch")
		}
		return res.Val.([]model.Restaurant), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: waiting for remote fetch: %w", source.ErrNetwork, ctx.Err())
	}
}

// readLocal returns the stored collection and whether it should be served.
// It only returns an error when the caller's context ended during the read;
// a store that failed on its own is a miss.
func (c *Coordinator) readLocal(ctx context.Context) ([]model.Restaurant, bool, error) {
	if c.store == nil {
		return nil, false, nil
	}

	local, err := c.store.GetAll(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, fmt.Errorf("%w: reading local store: %w", source.ErrNetwork, ctxErr)
		}
		c.stats.IncCounter(stats.MetricStoreErrors, 1)
		c.logger.Warn("local store read failed, treating as miss", zap.Error(err))
		return nil, false, nil
	}
	return local, len(local) > 0, nil
}

func (c *Coordinator) fetchAndStore(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if deduped := uniqueByID(restaurants); len(deduped) != len(restaurants) {
		c.logger.Warn("remote collection repeats restaurant ids, keeping the last of each",
			zap.Int("fetched", len(restaurants)),
			zap.Int("unique", len(deduped)),
		)
		restaurants = deduped
	}

	if c.store != nil {
		if err := c.store.PutAll(ctx, restaurants); err != nil {
			c.stats.IncCounter(stats.MetricStoreErrors, 1)
			c.logger.Warn("local store write failed, continuing without cache", zap.Error(err))
		}
	}
	return restaurants, nil
}

func (c *Coordinator) fetch(ctx context.Context) ([]model.Restaurant, error) {
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	c.stats.IncCounter(stats.MetricRemoteFetches, 1)
	start := time.Now()
	restaurants, err := c.source.FetchAll(ctx)
	c.stats.ObserveHistogram(stats.MetricRemoteFetchSeconds, time.Since(start).Seconds())

	if err != nil {
		c.stats.IncCounter(stats.MetricRemoteErrors, 1)
		c.logger.Debug("remote fetch failed", zap.Error(err))
		if !errors.Is(err, source.ErrNetwork) && !errors.Is(err, source.ErrDecode) &&
			(errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)) {
			err = fmt.Errorf("%w: %w", source.ErrNetwork, err)
		}
		return nil, fmt.Errorf("fetching restaurants: %w", err)
	}

	c.logger.Debug("fetched from remote source", zap.Int("count", len(restaurants)))
	return restaurants, nil
}

// uniqueByID collapses records sharing an ID the way the stores do: the
// first position is kept and the last record wins.
func uniqueByID(restaurants []model.Restaurant) []model.Restaurant {
	pos := make(map[int64]int, len(restaurants))
	out := make([]model.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if i, ok := pos[r.ID]; ok {
			out[i] = r
			continue
		}
		pos[r.ID] = len(out)
		out = append(out, r)
	}
	return out
}
