// Package sqlitedinerfx provides an fx module for a SQLite-backed diner client
// that mirrors an HTTP restaurant API.
package sqlitedinerfx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/diner"
	"github.com/discochess/diner/internal/config"
	"github.com/discochess/diner/internal/source/httpsource"
	"github.com/discochess/diner/internal/stats"
	statsprom "github.com/discochess/diner/internal/stats/prometheus"
	"github.com/discochess/diner/internal/store"
	"github.com/discochess/diner/internal/store/cachedstore"
	"github.com/discochess/diner/internal/store/sqlitestore"
)

// Config holds configuration for the SQLite-backed diner client.
type Config struct {
	// DataDir is the directory holding the SQLite database.
	DataDir string

	// APIURL is the restaurant API base URL.
	// Default is http://localhost:1337.
	APIURL string

	// FetchTimeout bounds a remote fetch.
	// Default is 10s.
	FetchTimeout time.Duration
}

// Module provides a SQLite-backed diner client.
// Requires a Config and a *zap.Logger to be provided. A prometheus.Registerer
// is used when provided; otherwise metrics go to a private registry.
var Module = fx.Module("sqlitediner",
	fx.Provide(
		newStatsCollector,
		newClient,
	),
)

// StatsParams holds dependencies for creating the stats collector.
type StatsParams struct {
	fx.In

	Registerer prometheus.Registerer `optional:"true"`
}

func newStatsCollector(p StatsParams) stats.Collector {
	reg := p.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return statsprom.New(reg)
}

// Params holds dependencies for creating the client.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided client.
type Result struct {
	fx.Out

	Client *diner.Client
}

func newClient(p Params) (Result, error) {
	apiURL := p.Config.APIURL
	if apiURL == "" {
		apiURL = httpsource.DefaultBaseURL
	}
	timeout := p.Config.FetchTimeout
	if timeout <= 0 {
		timeout = httpsource.DefaultTimeout
	}

	opts := []diner.Option{
		diner.WithSource(httpsource.New(apiURL, httpsource.WithTimeout(timeout))),
		diner.WithStats(p.Collector),
		diner.WithLogger(p.Logger.Named("diner")),
		diner.WithFetchTimeout(timeout),
	}

	st, err := openStore(p.Config.DataDir)
	if err != nil {
		// Without durable storage the client still works online.
		p.Collector.IncCounter(stats.MetricStoreErrors, 1)
		p.Logger.Warn("local store unavailable, running network-only",
			zap.String("dataDir", p.Config.DataDir),
			zap.Error(err),
		)
	} else {
		opts = append(opts, diner.WithStore(cachedstore.New(st)))
	}

	client, err := diner.New(opts...)
	if err != nil {
		if st != nil {
			st.Close()
		}
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return Result{Client: client}, nil
}

func openStore(dataDir string) (*sqlitestore.Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %w", store.ErrUnavailable, err)
	}
	return sqlitestore.Open(context.Background(), filepath.Join(dataDir, config.DatabaseFile))
}
