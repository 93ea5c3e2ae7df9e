// Package gcssource reads a published restaurant collection from Google Cloud
// Storage.
package gcssource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/discochess/diner/internal/codec"
	"github.com/discochess/diner/internal/model"
	"github.com/discochess/diner/internal/source"
)

// Compile-time check that Source implements source.Source.
var _ source.Source = (*Source)(nil)

// openFunc opens an object for reading.
type openFunc func(ctx context.Context, key string) (io.ReadCloser, error)

// Source reads <prefix>restaurants.json[.ext] from a bucket.
type Source struct {
	client *storage.Client
	open   openFunc
	bucket string
	prefix string
	codec  codec.Codec
}

// New creates a new GCS source.
// The bucket must already exist.
// The codec handles decompression of the published object.
func New(ctx context.Context, bucketName string, c codec.Codec, opts ...Option) (*Source, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	bucket := client.Bucket(bucketName)
	s := &Source{
		client: client,
		bucket: bucketName,
		codec:  c,
		open: func(ctx context.Context, key string) (io.ReadCloser, error) {
			return bucket.Object(key).NewReader(ctx)
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Option configures a Source.
type Option func(*Source)

// WithPrefix sets a key prefix for the collection object.
func WithPrefix(prefix string) Option {
	return func(s *Source) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// FetchAll downloads, decompresses and decodes the collection object.
func (s *Source) FetchAll(ctx context.Context) ([]model.Restaurant, error) {
	reader, err := s.open(ctx, s.Key())
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: gs://%s/%s does not exist", source.ErrNetwork, s.bucket, s.Key())
		}
		return nil, fmt.Errorf("%w: reading gs://%s/%s: %w", source.ErrNetwork, s.bucket, s.Key(), err)
	}
	defer reader.Close()

	decompressor, err := s.codec.Reader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: creating decompressor: %w", source.ErrDecode, err)
	}
	defer decompressor.Close()

	return source.Decode(decompressor)
}

// Key returns the full object key of the collection.
func (s *Source) Key() string {
	name := "restaurants.json"
	if ext := s.codec.Extension(); ext != "" {
		name += "." + ext
	}
	return s.prefix + name
}

// Close releases the GCS client.
func (s *Source) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
