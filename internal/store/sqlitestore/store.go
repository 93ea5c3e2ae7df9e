// Package sqlitestore provides a SQLite-backed restaurant store.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/discochess/diner/internal/model"
	"github.com/discochess/diner/internal/store"
	"github.com/discochess/diner/internal/store/sqlitestore/migrations"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store persists restaurants in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite restaurant store and applies embedded migrations.
// The restaurants table is created on first open; later opens of the same
// path reuse it. Any failure wraps store.ErrUnavailable.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: storage path is required", store.ErrUnavailable)
	}
	steps, err := LoadMigrations(migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("%w: load migrations: %w", store.ErrUnavailable, err)
	}
	return open(ctx, filepath.Clean(path), steps)
}

func open(ctx context.Context, path string, steps []Migration) (*Store, error) {
	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite db: %w", store.ErrUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: ping sqlite db: %w", store.ErrUnavailable, err)
	}
	if _, _, err := ApplyMigrations(ctx, sqlDB, steps); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: run migrations: %w", store.ErrUnavailable, err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetAll returns all stored restaurants ordered by ID.
func (s *Store) GetAll(ctx context.Context) ([]model.Restaurant, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, cuisine_type, neighborhood, lat, lng, photograph
		   FROM restaurants
		  ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	out := make([]model.Restaurant, 0)
	for rows.Next() {
		var (
			r          model.Restaurant
			photograph sql.NullString
		)
		if err := rows.Scan(
			&r.ID,
			&r.Name,
			&r.CuisineType,
			&r.Neighborhood,
			&r.LatLng.Lat,
			&r.LatLng.Lng,
			&photograph,
		); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		r.Photograph = photograph.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}
	return out, nil
}

// PutAll upserts every restaurant in a single transaction.
func (s *Store) PutAll(ctx context.Context, restaurants []model.Restaurant) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO restaurants (id, name, cuisine_type, neighborhood, lat, lng, photograph, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   cuisine_type = excluded.cuisine_type,
		   neighborhood = excluded.neighborhood,
		   lat = excluded.lat,
		   lng = excluded.lng,
		   photograph = excluded.photograph,
		   updated_at = excluded.updated_at`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	updatedAt := s.now().UTC().UnixMilli()
	for _, r := range restaurants {
		if _, err := stmt.ExecContext(ctx,
			r.ID,
			r.Name,
			r.CuisineType,
			r.Neighborhood,
			r.LatLng.Lat,
			r.LatLng.Lng,
			nullString(r.Photograph),
			updatedAt,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert restaurant %d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put: %w", err)
	}
	return nil
}

// Count returns the number of stored restaurants.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM restaurants").Scan(&n); err != nil {
		return 0, fmt.Errorf("count restaurants: %w", err)
	}
	return n, nil
}

// SchemaVersion returns the applied schema version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	return SchemaVersion(ctx, s.sqlDB)
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
