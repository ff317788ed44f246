package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/bft-labs/avatarsync/pkg/avatar"
)

// DefaultEndpoint is the configuration path relative to the base URL.
const DefaultEndpoint = "/api/avatar-config"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// HTTPFetcher implements Fetcher with a plain GET.
type HTTPFetcher struct {
	client    HTTPClient
	baseURL   string
	endpoint  string
	userAgent string
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(f *HTTPFetcher) {
		if endpoint != "" {
			f.endpoint = endpoint
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) { f.userAgent = ua }
}

// NewHTTPFetcher creates a fetcher for baseURL. A trailing slash is ignored.
func NewHTTPFetcher(client HTTPClient, baseURL string, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoint:  DefaultEndpoint,
		userAgent: "avatarsync/" + Version,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the full request URL.
func (f *HTTPFetcher) URL() string {
	ep := f.endpoint
	if !strings.HasPrefix(ep, "/") {
		ep = "/" + ep
	}
	return f.baseURL + ep
}

// Fetch issues the GET and decodes the response.
func (f *HTTPFetcher) Fetch(ctx context.Context) (avatar.Config, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(), nil)
	if err != nil {
		return avatar.Config{}, fmt.Errorf("%w: create request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	// intermediary caches must not answer for the backend
	req.Header.Set("Cache-Control", "no-store")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := f.client.Do(req)
	if err != nil {
		return avatar.Config{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxBodyBytes)

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(body, 512))
		return avatar.Config{}, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	cfg, err := avatar.Decode(body)
	if err != nil {
		return avatar.Config{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return cfg, nil
}

var _ Fetcher = (*HTTPFetcher)(nil)
