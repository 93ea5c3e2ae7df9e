package memstore

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/discochess/diner/internal/model"
)

func TestStore_GetAll_Empty(t *testing.T) {
	s := New()

	got, err := s.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("GetAll() = %v, want empty non-nil slice", got)
	}
}

func TestStore_PutAll_Upsert(t *testing.T) {
	s := New(model.Restaurant{ID: 1, Name: "Mission Chinese Food"})
	ctx := context.Background()

	err := s.PutAll(ctx, []model.Restaurant{
		{ID: 2, Name: "Emily"},
		{ID: 1, Name: "Mission Chinese Food (renamed)"},
	})
	if err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}

	got, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	want := []model.Restaurant{
		{ID: 1, Name: "Mission Chinese Food (renamed)"},
		{ID: 2, Name: "Emily"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetAll() mismatch (-want +got):\n%s", diff)
	}
	if s.Puts() != 1 {
		t.Errorf("Puts() = %d, want 1", s.Puts())
	}
}

func TestStore_GetAll_Cancelled(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.GetAll(ctx); err == nil {
		t.Error("GetAll() expected error for cancelled context")
	}
}
