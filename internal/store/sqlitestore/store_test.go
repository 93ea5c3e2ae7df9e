package sqlitestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/discochess/diner/internal/model"
	"github.com/discochess/diner/internal/store"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diner.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func sampleRestaurants() []model.Restaurant {
	return []model.Restaurant{
		{ID: 2, Name: "Emily", CuisineType: "Pizza", Neighborhood: "Brooklyn", LatLng: model.LatLng{Lat: 40.683555, Lng: -73.966393}, Photograph: "2"},
		{ID: 1, Name: "Mission Chinese Food", CuisineType: "Asian", Neighborhood: "Manhattan", LatLng: model.LatLng{Lat: 40.713829, Lng: -73.989667}},
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	if !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("Open() error = %v, want ErrUnavailable", err)
	}
}

func TestOpen_UnwritableLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "diner.db")
	_, err := Open(context.Background(), path)
	if !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("Open() error = %v, want ErrUnavailable", err)
	}
}

func TestOpen_AppliesSchema(t *testing.T) {
	s, _ := openTestStore(t)

	version, err := s.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != 3 {
		t.Errorf("SchemaVersion() = %d, want 3", version)
	}
}

func TestOpen_Idempotent(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()

	if err := s.PutAll(ctx, sampleRestaurants()); err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}

	again, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer again.Close()

	n, err := again.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestStore_GetAll_Empty(t *testing.T) {
	s, _ := openTestStore(t)

	got, err := s.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("GetAll() = %v, want empty non-nil slice", got)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	if err := s.PutAll(ctx, sampleRestaurants()); err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}

	got, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	in := sampleRestaurants()
	want := []model.Restaurant{in[1], in[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetAll() mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_PutAll_UpsertKeepsAbsentRecords(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	s.now = func() time.Time { return time.Unix(1700000000, 0) }

	if err := s.PutAll(ctx, sampleRestaurants()); err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}
	changed := model.Restaurant{ID: 2, Name: "Emily", CuisineType: "Pizza", Neighborhood: "West Village"}
	if err := s.PutAll(ctx, []model.Restaurant{changed}); err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}

	got, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetAll() returned %d records, want 2", len(got))
	}
	if got[1] != changed {
		t.Errorf("record 2 = %+v, want %+v", got[1], changed)
	}
	if got[0].ID != 1 {
		t.Errorf("record 1 was removed: %+v", got[0])
	}
}
