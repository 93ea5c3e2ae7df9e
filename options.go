package diner

import (
	"time"

	"go.uber.org/zap"

	"github.com/discochess/diner/internal/coordinator"
	"github.com/discochess/diner/internal/source"
	"github.com/discochess/diner/internal/stats"
	"github.com/discochess/diner/internal/store"
)

// Option configures a Client.
type Option interface {
	apply(*options)
}

// options holds the client configuration.
type options struct {
	store        store.Store
	source       source.Source
	stats        stats.Collector
	logger       *zap.Logger
	fetchTimeout time.Duration
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		stats:        stats.NewNoop(),
		logger:       zap.NewNop(),
		fetchTimeout: coordinator.DefaultFetchTimeout,
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithSource sets the remote source the collection is fetched from.
// Required.
func WithSource(s source.Source) Option {
	return optionFunc(func(o *options) {
		o.source = s
	})
}

// WithStore sets the local persistent store.
// If not set, every request goes to the remote source.
func WithStore(s store.Store) Option {
	return optionFunc(func(o *options) {
		o.store = s
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		if c != nil {
			o.stats = c
		}
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		if l != nil {
			o.logger = l
		}
	})
}

// WithFetchTimeout bounds each remote fetch; a fetch that runs longer fails
// with ErrNetwork. Default is 10s. Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return optionFunc(func(o *options) {
		o.fetchTimeout = d
	})
}
