// Package codec provides compression for persisted and published restaurant
// payloads.
package codec

import "io"

// Codec compresses and decompresses record payloads.
type Codec interface {
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress data written to it.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Extension returns the file extension without dot (e.g., "zst", "gz").
	// Returns empty string for no compression.
	Extension() string
	// Name returns the configuration name of the codec ("zstd", "gzip", "none").
	Name() string
}
