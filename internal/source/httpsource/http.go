// Package httpsource fetches the restaurant collection from the REST API.
package httpsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/discochess/diner/internal/model"
	"github.com/discochess/diner/internal/source"
)

// Compile-time check that Source implements source.Source.
var _ source.Source = (*Source)(nil)

// DefaultTimeout bounds a single collection fetch.
const DefaultTimeout = 10 * time.Second

// DefaultBaseURL is the development API server address.
const DefaultBaseURL = "http://localhost:1337"

// maxErrorBody caps how much of a failed response is quoted in the error.
const maxErrorBody = 512

// Source fetches GET {baseURL}/restaurants.
type Source struct {
	client  *http.Client
	baseURL string
}

// Option configures a Source.
type Option func(*Source)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Source) {
		s.client = client
	}
}

// WithTimeout sets the overall timeout for a fetch.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Source) {
		s.client = &http.Client{
			Timeout:   timeout,
			Transport: s.client.Transport,
		}
	}
}

// New creates a Source for the given API base URL.
func New(baseURL string, opts ...Option) *Source {
	s := &Source{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: DefaultTimeout,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the collection endpoint.
func (s *Source) URL() string {
	return s.baseURL + "/restaurants"
}

// FetchAll downloads and decodes the full collection.
func (s *Source) FetchAll(ctx context.Context) ([]model.Restaurant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", source.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %w", source.ErrNetwork, s.URL(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: unexpected status %s: %s", source.ErrNetwork, resp.Status, strings.TrimSpace(string(snippet)))
	}

	restaurants, err := source.Decode(resp.Body)
	if err != nil {
		// A connection dropped mid-body is a transport failure, not bad data.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: reading body: %w", source.ErrNetwork, ctxErr)
		}
		return nil, err
	}
	return restaurants, nil
}
