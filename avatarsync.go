// Package avatarsync keeps an avatar configuration in sync with a backend.
//
// Example usage:
//
//	s := avatarsync.NewHTTP("http://localhost:8080", nil)
//	if err := s.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Stop()
//	st := s.Snapshot() // {Config, IsLoading, IsError}
//
// The building blocks live in pkg/: avatar (model), fetch (HTTP client),
// settings (synchronizer), store (last known-good copy) and log.
package avatarsync

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/avatarsync/internal/cliconfig"
	"github.com/bft-labs/avatarsync/pkg/avatar"
	"github.com/bft-labs/avatarsync/pkg/fetch"
	"github.com/bft-labs/avatarsync/pkg/settings"
)

// Config is a single avatar configuration.
type Config = avatar.Config

// State is what consumers read: the configuration plus loading and error flags.
type State = settings.State

// Synchronizer owns the current State and its refresh timer.
type Synchronizer = settings.Synchronizer

// DefaultInterval is the refresh period used when none is given.
const DefaultInterval = settings.DefaultInterval

// DefaultHTTPTimeout bounds each fetch made by NewHTTP.
const DefaultHTTPTimeout = 10 * time.Second

// NewHTTP creates a synchronizer polling baseURL + /api/avatar-config.
// A nil seed starts in the loading state and fetches as soon as it starts.
func NewHTTP(baseURL string, seed *Config, opts ...settings.Option) *Synchronizer {
	f := fetch.NewHTTPFetcher(&http.Client{Timeout: DefaultHTTPTimeout}, baseURL)
	return settings.New(f, seed, opts...)
}

// Run starts s and blocks until ctx is cancelled, then tears it down.
func Run(ctx context.Context, s *Synchronizer) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return s.Stop()
}

// Logger returns the package-level zerolog logger used by the CLI.
func Logger() zerolog.Logger {
	return cliconfig.Logger()
}
