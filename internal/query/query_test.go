package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/discochess/diner/internal/model"
)

func restaurants() []model.Restaurant {
	return []model.Restaurant{
		{ID: 1, Name: "Mission Chinese Food", CuisineType: "Asian", Neighborhood: "Manhattan"},
		{ID: 2, Name: "Emily", CuisineType: "Pizza", Neighborhood: "Brooklyn"},
		{ID: 3, Name: "Kang Ho Dong Baekjeong", CuisineType: "Asian", Neighborhood: "Manhattan"},
		{ID: 4, Name: "Katz's Delicatessen", CuisineType: "American", Neighborhood: "Manhattan"},
		{ID: 5, Name: "Roberta's Pizza", CuisineType: "Pizza", Neighborhood: "Brooklyn"},
		{ID: 6, Name: "Casa Enrique", CuisineType: "Mexican", Neighborhood: "Queens"},
	}
}

func ids(rs []model.Restaurant) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestByID(t *testing.T) {
	rs := restaurants()

	got, ok := ByID(rs, 4)
	if !ok {
		t.Fatal("ByID(4) not found")
	}
	if got.Name != "Katz's Delicatessen" {
		t.Errorf("ByID(4).Name = %q, want %q", got.Name, "Katz's Delicatessen")
	}

	again, _ := ByID(rs, 4)
	if again != got {
		t.Errorf("ByID(4) not deterministic: %+v vs %+v", again, got)
	}

	if _, ok := ByID(rs, 9999); ok {
		t.Error("ByID(9999) found a restaurant")
	}
	if _, ok := ByID(nil, 1); ok {
		t.Error("ByID on empty collection found a restaurant")
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []int64
	}{
		{"all all", Criteria{Cuisine: All, Neighborhood: All}, []int64{1, 2, 3, 4, 5, 6}},
		{"zero criteria", Criteria{}, []int64{1, 2, 3, 4, 5, 6}},
		{"cuisine only", Criteria{Cuisine: "Asian", Neighborhood: All}, []int64{1, 3}},
		{"neighborhood only", Criteria{Cuisine: All, Neighborhood: "Brooklyn"}, []int64{2, 5}},
		{"both", Criteria{Cuisine: "Pizza", Neighborhood: "Brooklyn"}, []int64{2, 5}},
		{"both no overlap", Criteria{Cuisine: "Mexican", Neighborhood: "Manhattan"}, []int64{}},
		{"unknown cuisine", Criteria{Cuisine: "Ethiopian"}, []int64{}},
		{"exact match only", Criteria{Cuisine: "asian"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(restaurants(), tt.c)
			if got == nil {
				t.Fatal("Filter() returned nil")
			}
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	in := restaurants()
	_ = Filter(in, Criteria{Cuisine: "Asian"})

	if diff := cmp.Diff(restaurants(), in); diff != "" {
		t.Errorf("Filter() modified input (-want +got):\n%s", diff)
	}
}
