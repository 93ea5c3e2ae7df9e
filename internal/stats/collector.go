// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Client metrics.
	MetricRequests = "diner_requests_total"
	MetricLookups  = "diner_lookups_total"
	MetricNotFound = "diner_not_found_total"

	// Local store metrics.
	MetricStoreHits   = "diner_store_hits_total"
	MetricStoreMisses = "diner_store_misses_total"
	MetricStoreErrors = "diner_store_errors_total"

	// Remote source metrics.
	MetricRemoteFetches      = "diner_remote_fetches_total"
	MetricRemoteErrors       = "diner_remote_errors_total"
	MetricRemoteFetchSeconds = "diner_remote_fetch_seconds"

	// Collection metrics.
	MetricCollectionSize = "diner_collection_size"
)

var help = map[string]string{
	MetricRequests:           "Collection requests served by the client.",
	MetricLookups:            "Lookups by restaurant ID.",
	MetricNotFound:           "Lookups by restaurant ID that found nothing.",
	MetricStoreHits:          "Requests answered from the local store.",
	MetricStoreMisses:        "Requests that found the local store empty.",
	MetricStoreErrors:        "Local store reads or writes that failed and were ignored.",
	MetricRemoteFetches:      "Fetches issued against the remote source.",
	MetricRemoteErrors:       "Remote fetches that failed.",
	MetricRemoteFetchSeconds: "Latency of remote fetches in seconds.",
	MetricCollectionSize:     "Number of restaurants in the last served collection.",
}

// Help returns the description of a known metric, or the name itself.
func Help(name string) string {
	if h, ok := help[name]; ok {
		return h
	}
	return name
}

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
