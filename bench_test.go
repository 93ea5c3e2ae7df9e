package diner

import (
	"context"
	"fmt"
	"testing"

	"github.com/discochess/diner/internal/source/memsource"
	"github.com/discochess/diner/internal/store/memstore"
)

func benchRestaurants(n int) []Restaurant {
	cuisines := []string{"Asian", "Pizza", "American", "Italian", "Mexican"}
	neighborhoods := []string{"Manhattan", "Brooklyn", "Queens"}
	out := make([]Restaurant, n)
	for i := range out {
		out[i] = Restaurant{
			ID:           int64(i + 1),
			Name:         fmt.Sprintf("Restaurant %d", i+1),
			CuisineType:  cuisines[i%len(cuisines)],
			Neighborhood: neighborhoods[i%len(neighborhoods)],
		}
	}
	return out
}

func benchClient(b *testing.B, n int) *Client {
	b.Helper()
	client, err := New(WithStore(memstore.New(benchRestaurants(n)...)), WithSource(memsource.New()))
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}
	b.Cleanup(func() { client.Close() })
	return client
}

func BenchmarkClient_RestaurantByID(b *testing.B) {
	client := benchClient(b, 1000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.RestaurantByID(ctx, int64(i%1000)+1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkClient_RestaurantsByCuisineAndNeighborhood(b *testing.B) {
	client := benchClient(b, 1000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.RestaurantsByCuisineAndNeighborhood(ctx, "Italian", All); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkClient_Cuisines(b *testing.B) {
	client := benchClient(b, 1000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.Cuisines(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
