// Package memorydinerfx provides an fx module for an in-memory diner client.
// Useful for testing.
package memorydinerfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/diner"
	"github.com/discochess/diner/internal/source/memsource"
	"github.com/discochess/diner/internal/stats"
	"github.com/discochess/diner/internal/stats/logger"
	"github.com/discochess/diner/internal/store/memstore"
)

// Module provides an in-memory diner client for testing.
// The store and source are provided too, for test setup.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("memorydiner",
	fx.Provide(
		newStatsCollector,
		newMemStore,
		newMemSource,
		newClient,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("diner.stats"))
}

func newMemStore() *memstore.Store {
	return memstore.New()
}

func newMemSource() *memsource.Source {
	return memsource.New()
}

// Params holds dependencies for creating the client.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Store     *memstore.Store
	Source    *memsource.Source
	Lifecycle fx.Lifecycle
}

// Result holds the provided client.
type Result struct {
	fx.Out

	Client *diner.Client
}

func newClient(p Params) (Result, error) {
	client, err := diner.New(
		diner.WithStore(p.Store),
		diner.WithSource(p.Source),
		diner.WithStats(p.Collector),
		diner.WithLogger(p.Logger.Named("diner")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return Result{Client: client}, nil
}
