package sqlitedinerfx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/discochess/diner"
	"github.com/discochess/diner/internal/stats"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/restaurants" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[{"id":1,"name":"Emily","cuisine_type":"Pizza","neighborhood":"Brooklyn","latlng":{"lat":40.683555,"lng":-73.966393}}]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// runClient starts the module, reads the collection twice and returns the
// counter values.
func runClient(t *testing.T, cfg Config) map[string]float64 {
	t.Helper()
	reg := prometheus.NewRegistry()
	var client *diner.Client
	app := fxtest.New(t,
		fx.Supply(zap.NewNop()),
		fx.Supply(cfg),
		fx.Provide(func() prometheus.Registerer { return reg }),
		Module,
		fx.Populate(&client),
	)
	app.RequireStart()
	defer app.RequireStop()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		got, err := client.Restaurants(ctx)
		if err != nil {
			t.Fatalf("Restaurants() error = %v", err)
		}
		if len(got) != 1 || got[0].Name != "Emily" {
			t.Errorf("Restaurants() = %+v, want [Emily]", got)
		}
	}

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	counters := make(map[string]float64)
	for _, m := range metrics {
		if len(m.GetMetric()) > 0 {
			counters[m.GetName()] = m.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return counters
}

func TestModule(t *testing.T) {
	srv := newAPI(t)
	counters := runClient(t, Config{DataDir: t.TempDir(), APIURL: srv.URL})

	if got := counters[stats.MetricRemoteFetches]; got != 1 {
		t.Errorf("%s = %v, want 1", stats.MetricRemoteFetches, got)
	}
	if got := counters[stats.MetricStoreHits]; got != 1 {
		t.Errorf("%s = %v, want 1", stats.MetricStoreHits, got)
	}
}

func TestModule_UnwritableDataDirRunsNetworkOnly(t *testing.T) {
	srv := newAPI(t)
	file := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	counters := runClient(t, Config{DataDir: filepath.Join(file, "diner"), APIURL: srv.URL})

	if got := counters[stats.MetricRemoteFetches]; got != 2 {
		t.Errorf("%s = %v, want 2", stats.MetricRemoteFetches, got)
	}
	if got := counters[stats.MetricStoreErrors]; got != 1 {
		t.Errorf("%s = %v, want 1", stats.MetricStoreErrors, got)
	}
	if got := counters[stats.MetricStoreHits]; got != 0 {
		t.Errorf("%s = %v, want 0", stats.MetricStoreHits, got)
	}
}
