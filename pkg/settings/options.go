package settings

import (
	"time"

	"github.com/bft-labs/avatarsync/pkg/lifecycle"
	"github.com/bft-labs/avatarsync/pkg/log"
)

// DefaultInterval is the refresh period.
const DefaultInterval = 30 * time.Second

// Option configures optional behavior of a Synchronizer.
type Option func(*options)

type options struct {
	interval        time.Duration
	shutdownTimeout time.Duration
	logger          log.Logger
	handler         EventHandler
}

func defaultOptions() options {
	return options{
		interval:        DefaultInterval,
		shutdownTimeout: lifecycle.ShutdownTimeout,
		logger:          log.Nop(),
	}
}

// WithInterval sets the refresh period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithShutdownTimeout bounds how long Stop waits for in-flight fetches.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEventHandler registers an event handler. Repeated calls accumulate.
func WithEventHandler(h EventHandler) Option {
	return func(o *options) {
		if h == nil {
			return
		}
		if o.handler == nil {
			o.handler = h
			return
		}
		o.handler = Handlers{o.handler, h}
	}
}
