// Package source defines the remote source the restaurant collection is
// fetched from.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/discochess/diner/internal/model"
)

// Sentinel errors for remote failures.
var (
	// ErrNetwork indicates a transport failure, timeout or non-success response.
	ErrNetwork = errors.New("source: network error")

	// ErrDecode indicates the response body was not a well-formed restaurant array.
	ErrDecode = errors.New("source: decode error")
)

// Source fetches the full restaurant collection from a single configured
// endpoint. Implementations do not retry.
type Source interface {
	FetchAll(ctx context.Context) ([]model.Restaurant, error)
}

// Decode reads a JSON array of restaurants from r.
// Any malformed input is reported as ErrDecode.
func Decode(r io.Reader) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	dec := json.NewDecoder(r)
	if err := dec.Decode(&restaurants); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	// The array must be the whole body.
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after array")
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if restaurants == nil {
		// A literal null body is not a collection.
		return nil, fmt.Errorf("%w: expected array, got null", ErrDecode)
	}
	return restaurants, nil
}
