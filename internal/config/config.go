// Package config loads process configuration for the diner binaries from
// DINER_* environment variables and builds the configured store and source.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/discochess/diner/internal/codec"
	"github.com/discochess/diner/internal/codec/gzipcodec"
	"github.com/discochess/diner/internal/codec/noopcodec"
	"github.com/discochess/diner/internal/codec/zstdcodec"
	"github.com/discochess/diner/internal/source"
	"github.com/discochess/diner/internal/source/gcssource"
	"github.com/discochess/diner/internal/source/httpsource"
	"github.com/discochess/diner/internal/source/s3source"
	"github.com/discochess/diner/internal/store"
	"github.com/discochess/diner/internal/store/cachedstore"
	"github.com/discochess/diner/internal/store/diskstore"
	"github.com/discochess/diner/internal/store/memstore"
	"github.com/discochess/diner/internal/store/sqlitestore"
)

// Store kinds.
const (
	StoreSQLite = "sqlite"
	StoreDisk   = "disk"
	StoreMemory = "memory"
	StoreNone   = "none"
)

// Source kinds.
const (
	SourceHTTP = "http"
	SourceS3   = "s3"
	SourceGCS  = "gcs"
)

// DatabaseFile is the SQLite file name inside the data directory.
const DatabaseFile = "diner.db"

// ErrInvalid indicates a configuration value is not recognized.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the process configuration.
type Config struct {
	APIURL       string        `env:"DINER_API_URL" envDefault:"http://localhost:1337"`
	DataDir      string        `env:"DINER_DATA_DIR" envDefault:"./data"`
	Store        string        `env:"DINER_STORE" envDefault:"sqlite"`
	Source       string        `env:"DINER_SOURCE" envDefault:"http"`
	Bucket       string        `env:"DINER_BUCKET"`
	Prefix       string        `env:"DINER_PREFIX"`
	Region       string        `env:"DINER_S3_REGION"`
	Endpoint     string        `env:"DINER_S3_ENDPOINT"`
	FetchTimeout time.Duration `env:"DINER_FETCH_TIMEOUT" envDefault:"10s"`
	Codec        string        `env:"DINER_CODEC" envDefault:"zstd"`
	MemoryCache  bool          `env:"DINER_MEMORY_CACHE" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first unrecognized or missing value.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreDisk, StoreMemory, StoreNone:
	default:
		return fmt.Errorf("%w: store %q (want sqlite, disk, memory or none)", ErrInvalid, c.Store)
	}
	switch c.Source {
	case SourceHTTP:
		if c.APIURL == "" {
			return fmt.Errorf("%w: api url is required for the http source", ErrInvalid)
		}
	case SourceS3, SourceGCS:
		if c.Bucket == "" {
			return fmt.Errorf("%w: bucket is required for the %s source", ErrInvalid, c.Source)
		}
	default:
		return fmt.Errorf("%w: source %q (want http, s3 or gcs)", ErrInvalid, c.Source)
	}
	if _, err := NewCodec(c.Codec); err != nil {
		return err
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: fetch timeout must be positive, got %s", ErrInvalid, c.FetchTimeout)
	}
	return nil
}

// NewCodec returns the codec registered under name.
func NewCodec(name string) (codec.Codec, error) {
	switch name {
	case "zstd":
		return zstdcodec.New(), nil
	case "gzip":
		return gzipcodec.New(), nil
	case "none", "":
		return noopcodec.New(), nil
	default:
		return nil, fmt.Errorf("%w: codec %q (want zstd, gzip or none)", ErrInvalid, name)
	}
}

// OpenStore opens the configured local store. It returns nil, nil for
// StoreNone, which means network-only operation. Durable stores are wrapped
// in a memory snapshot when MemoryCache is set. The data directory is
// created if absent.
func (c Config) OpenStore(ctx context.Context) (store.Store, error) {
	if c.Store != StoreSQLite && c.Store != StoreDisk {
		return c.openVolatileStore()
	}
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %w", store.ErrUnavailable, err)
	}

	var (
		st  store.Store
		err error
	)
	switch c.Store {
	case StoreSQLite:
		st, err = sqlitestore.Open(ctx, filepath.Join(c.DataDir, DatabaseFile))
	case StoreDisk:
		var cc codec.Codec
		if cc, err = NewCodec(c.Codec); err != nil {
			return nil, err
		}
		st, err = diskstore.Open(c.DataDir, cc)
	}
	if err != nil {
		return nil, err
	}
	if c.MemoryCache {
		st = cachedstore.New(st)
	}
	return st, nil
}

func (c Config) openVolatileStore() (store.Store, error) {
	switch c.Store {
	case StoreMemory:
		return memstore.New(), nil
	case StoreNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: store %q", ErrInvalid, c.Store)
	}
}

// OpenSource builds the configured remote source.
func (c Config) OpenSource(ctx context.Context) (source.Source, error) {
	switch c.Source {
	case SourceHTTP:
		return httpsource.New(c.APIURL, httpsource.WithTimeout(c.FetchTimeout)), nil
	case SourceS3:
		cc, err := NewCodec(c.Codec)
		if err != nil {
			return nil, err
		}
		opts := []s3source.Option{s3source.WithPrefix(c.Prefix)}
		if c.Region != "" {
			opts = append(opts, s3source.WithRegion(c.Region))
		}
		if c.Endpoint != "" {
			opts = append(opts, s3source.WithEndpoint(c.Endpoint))
		}
		return s3source.New(ctx, c.Bucket, cc, opts...)
	case SourceGCS:
		cc, err := NewCodec(c.Codec)
		if err != nil {
			return nil, err
		}
		return gcssource.New(ctx, c.Bucket, cc, gcssource.WithPrefix(c.Prefix))
	default:
		return nil, fmt.Errorf("%w: source %q", ErrInvalid, c.Source)
	}
}
