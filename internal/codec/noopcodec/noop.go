// Package noopcodec provides a pass-through codec for uncompressed payloads.
package noopcodec

import (
	"io"

	"github.com/discochess/diner/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec stores payloads as-is.
type Codec struct{}

// New returns a new pass-through codec.
func New() *Codec {
	return &Codec{}
}

// Reader returns r as a ReadCloser. Closing it never closes r.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

// Writer returns w as a WriteCloser. Closing it never closes w.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

// Extension returns empty string.
func (c *Codec) Extension() string { return "" }

// Name returns "none".
func (c *Codec) Name() string { return "none" }

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
