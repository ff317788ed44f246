package app

import (
	"time"

	"github.com/bft-labs/avatarsync/pkg/fetch"
	"github.com/bft-labs/avatarsync/pkg/log"
	"github.com/bft-labs/avatarsync/pkg/settings"
	"github.com/bft-labs/avatarsync/pkg/store"
)

// Option configures a Runner.
type Option func(*options)

type options struct {
	logger          log.Logger
	handlers        []settings.EventHandler
	httpClient      fetch.HTTPClient
	repo            store.Repository
	repoSet         bool
	shutdownTimeout time.Duration
}

// WithLogger sets the logger shared by the runner and its synchronizers.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEventHandler adds a handler to every synchronizer the runner creates.
func WithEventHandler(h settings.EventHandler) Option {
	return func(o *options) {
		if h != nil {
			o.handlers = append(o.handlers, h)
		}
	}
}

// WithHTTPClient replaces the per-config *http.Client.
func WithHTTPClient(c fetch.HTTPClient) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithRepository replaces the file store under Config.StateDir.
// A nil repository disables the seed store.
func WithRepository(r store.Repository) Option {
	return func(o *options) {
		o.repo = r
		o.repoSet = true
	}
}

// WithShutdownTimeout bounds how long teardown waits for in-flight fetches.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}
