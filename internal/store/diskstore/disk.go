// Package diskstore implements a disk-based filesystem storage backend.
//
// Each restaurant is kept in its own file under <root>/restaurants, named by
// ID and compressed with the configured codec.
package diskstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/discochess/diner/internal/codec"
	"github.com/discochess/diner/internal/model"
	"github.com/discochess/diner/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

const collectionDir = "restaurants"

// Store is a disk-based filesystem storage backend.
type Store struct {
	root  string
	codec codec.Codec

	// mu serializes writers.
	mu sync.Mutex
}

// Open opens a disk store rooted at the given directory.
// The root must exist; the record collection directory is created if absent.
// Opening the same root twice yields handles onto the same files.
func Open(root string, c codec.Codec) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: stat root directory: %w", store.ErrUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", store.ErrUnavailable, root)
	}

	if err := os.MkdirAll(filepath.Join(root, collectionDir), 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating collection directory: %w", store.ErrUnavailable, err)
	}

	return &Store{
		root:  root,
		codec: c,
	}, nil
}

// GetAll reads and decodes every restaurant file, ordered by ID.
func (s *Store) GetAll(ctx context.Context) ([]model.Restaurant, error) {
	// Check for cancellation before starting I/O.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.collectionPath())
	if err != nil {
		return nil, fmt.Errorf("reading collection directory: %w", err)
	}

	out := make([]model.Restaurant, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := s.parseName(entry.Name()); !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r, err := s.readRecord(filepath.Join(s.collectionPath(), entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		out = append(out, r)
	}

	slices.SortFunc(out, func(a, b model.Restaurant) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

// PutAll encodes and writes each restaurant, replacing any file with the same ID.
func (s *Store) PutAll(ctx context.Context, restaurants []model.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range restaurants {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.writeRecord(r); err != nil {
			return fmt.Errorf("writing restaurant %d: %w", r.ID, err)
		}
	}
	return nil
}

// Close releases any resources held by the store.
func (s *Store) Close() error {
	return nil
}

func (s *Store) readRecord(path string) (model.Restaurant, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return model.Restaurant{}, err
	}

	// Decompress using codec.
	reader, err := s.codec.Reader(bytes.NewReader(compressed))
	if err != nil {
		return model.Restaurant{}, fmt.Errorf("creating decompressor: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return model.Restaurant{}, fmt.Errorf("decompressing: %w", err)
	}

	var r model.Restaurant
	if err := json.Unmarshal(data, &r); err != nil {
		return model.Restaurant{}, fmt.Errorf("decoding: %w", err)
	}
	return r, nil
}

func (s *Store) writeRecord(r model.Restaurant) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	var buf bytes.Buffer
	w, err := s.codec.Writer(&buf)
	if err != nil {
		return fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("compressing: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing compressor: %w", err)
	}

	tmp, err := os.CreateTemp(s.collectionPath(), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.recordPath(r.ID)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (s *Store) collectionPath() string {
	return filepath.Join(s.root, collectionDir)
}

// recordPath returns the filesystem path for a restaurant record.
func (s *Store) recordPath(id int64) string {
	return filepath.Join(s.collectionPath(), s.recordName(id))
}

// recordName returns the filename for a restaurant ID.
func (s *Store) recordName(id int64) string {
	name := strconv.FormatInt(id, 10) + ".json"
	if ext := s.codec.Extension(); ext != "" {
		name += "." + ext
	}
	return name
}

// parseName extracts the ID from a record filename written by this store.
func (s *Store) parseName(name string) (int64, bool) {
	suffix := ".json"
	if ext := s.codec.Extension(); ext != "" {
		suffix += "." + ext
	}
	base, ok := strings.CutSuffix(name, suffix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(base, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
