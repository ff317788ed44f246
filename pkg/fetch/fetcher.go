package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bft-labs/avatarsync/pkg/avatar"
)

// Fetch errors. Every error returned by HTTPFetcher wraps exactly one of them.
var (
	ErrTransport = errors.New("fetch: transport failure")
	ErrStatus    = errors.New("fetch: unexpected status")
	ErrDecode    = errors.New("fetch: invalid body")
)

// Fetcher loads the current avatar configuration.
type Fetcher interface {
	// Fetch performs one retrieval. It must honor ctx cancellation.
	Fetch(ctx context.Context) (avatar.Config, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (avatar.Config, error)

// Fetch calls f(ctx).
func (f FetcherFunc) Fetch(ctx context.Context) (avatar.Config, error) { return f(ctx) }

// HTTPClient abstracts HTTP request execution for testing and custom transports.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
}

// Is makes errors.Is(err, ErrStatus) match.
func (e *StatusError) Is(target error) bool { return target == ErrStatus }
