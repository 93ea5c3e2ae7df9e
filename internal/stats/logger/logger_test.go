package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/discochess/diner/internal/stats"
)

func TestCollector_LogsMetrics(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := New(zap.New(core))

	c.IncCounter(stats.MetricRequests, 1)
	c.SetGauge(stats.MetricCollectionSize, 10)
	c.ObserveHistogram(stats.MetricRemoteFetchSeconds, 0.25)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("logged %d entries, want 3", len(entries))
	}
	wantMessages := []string{"counter", "gauge", "histogram"}
	for i, e := range entries {
		if e.Message != wantMessages[i] {
			t.Errorf("entry %d message = %q, want %q", i, e.Message, wantMessages[i])
		}
		if got := e.ContextMap()["metric"]; got == nil {
			t.Errorf("entry %d missing metric field", i)
		}
	}
}

func TestNew_NilLogger(t *testing.T) {
	c := New(nil)
	// Must not panic.
	c.IncCounter(stats.MetricLookups, 1)
}

func TestCollector_CounterTotals(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := New(zap.New(core))

	c.IncCounter(stats.MetricStoreHits, 1)
	c.IncCounter(stats.MetricStoreHits, 2)

	if got := c.Total(stats.MetricStoreHits); got != 3 {
		t.Errorf("Total() = %d, want 3", got)
	}
	entries := logs.All()
	if got := entries[len(entries)-1].ContextMap()["total"]; got != int64(3) {
		t.Errorf("last entry total = %v, want 3", got)
	}
}

func TestCollector_FailureCountersAtInfo(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	c := New(zap.New(core))

	c.IncCounter(stats.MetricStoreHits, 1)
	c.IncCounter(stats.MetricStoreErrors, 1)
	c.IncCounter(stats.MetricRemoteErrors, 1)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries at info, want 2", len(entries))
	}
	for i, want := range []string{stats.MetricStoreErrors, stats.MetricRemoteErrors} {
		if got := entries[i].ContextMap()["metric"]; got != want {
			t.Errorf("entry %d metric = %v, want %s", i, got, want)
		}
	}
}
