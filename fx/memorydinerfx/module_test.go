package memorydinerfx

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/discochess/diner"
	"github.com/discochess/diner/internal/model"
	"github.com/discochess/diner/internal/source/memsource"
	"github.com/discochess/diner/internal/store/memstore"
)

func TestModule(t *testing.T) {
	var (
		client *diner.Client
		st     *memstore.Store
		src    *memsource.Source
	)
	app := fxtest.New(t,
		fx.Supply(zap.NewNop()),
		Module,
		fx.Populate(&client, &st, &src),
	)
	app.RequireStart()

	src.SetRestaurants([]model.Restaurant{
		{ID: 1, Name: "Mission Chinese Food", CuisineType: "Asian", Neighborhood: "Manhattan"},
		{ID: 2, Name: "Emily", CuisineType: "Pizza", Neighborhood: "Brooklyn"},
	})

	ctx := context.Background()
	got, err := client.Restaurants(ctx)
	if err != nil {
		t.Fatalf("Restaurants() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Restaurants() returned %d, want 2", len(got))
	}
	if st.Len() != 2 {
		t.Errorf("store holds %d restaurants, want 2", st.Len())
	}

	app.RequireStop()

	if _, err := client.Restaurants(ctx); !errors.Is(err, diner.ErrClosed) {
		t.Errorf("Restaurants() after stop error = %v, want ErrClosed", err)
	}
}
