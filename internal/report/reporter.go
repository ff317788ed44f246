// Package report forwards fetch failures to Sentry. It reports once per
// outage: the transition into the error state is captured, subsequent failed
// refreshes are not, and recovery leaves a breadcrumb.
package report

import (
	"sync"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/bft-labs/avatarsync/pkg/log"
	"github.com/bft-labs/avatarsync/pkg/settings"
)

const flushTimeout = 2 * time.Second

// Options configures a Reporter.
type Options struct {
	DSN         string
	Environment string
	Release     string
	BaseURL     string
	Logger      log.Logger
}

// Hub is the subset of *sentry.Hub the reporter uses.
type Hub interface {
	CaptureException(err error) *sentry.EventID
	AddBreadcrumb(b *sentry.Breadcrumb, hint *sentry.BreadcrumbHint)
	Flush(timeout time.Duration) bool
}

// Reporter implements settings.EventHandler.
type Reporter struct {
	hub    Hub
	logger log.Logger

	mu     sync.Mutex
	failed bool
	last   error
}

// New creates a reporter. An empty DSN returns a nil reporter and no error;
// nil reporters are valid handlers that do nothing.
func New(opts Options) (*Reporter, error) {
	if opts.DSN == "" {
		return nil, nil
	}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         opts.DSN,
		Environment: opts.Environment,
		Release:     opts.Release,
	})
	if err != nil {
		return nil, err
	}

	scope := sentry.NewScope()
	scope.SetTag("component", "avatarsync")
	if opts.BaseURL != "" {
		scope.SetTag("base_url", opts.BaseURL)
	}
	return NewWithHub(sentry.NewHub(client, scope), opts.Logger), nil
}

// NewWithHub creates a reporter on an existing hub.
func NewWithHub(hub Hub, logger log.Logger) *Reporter {
	if logger == nil {
		logger = log.Nop()
	}
	return &Reporter{hub: hub, logger: logger}
}

// OnFetchError remembers the error so the following transition can report it.
func (r *Reporter) OnFetchError(e settings.FetchErrorEvent) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.last = e.Err
	r.mu.Unlock()
}

// OnStateChange captures the entry into the error state and notes recovery.
func (r *Reporter) OnStateChange(e settings.StateChangeEvent) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case e.Current.IsError && !r.failed:
		r.failed = true
		if r.last == nil {
			return
		}
		id := r.hub.CaptureException(r.last)
		if id != nil {
			r.logger.Debug("reported fetch failure", log.String("event_id", string(*id)))
		}
	case !e.Current.IsError && r.failed:
		r.failed = false
		r.last = nil
		r.hub.AddBreadcrumb(&sentry.Breadcrumb{
			Category:  "avatarsync",
			Message:   "avatar config fetch recovered",
			Level:     sentry.LevelInfo,
			Timestamp: time.Now(),
		}, nil)
	}
}

// Close flushes buffered events.
func (r *Reporter) Close() {
	if r == nil {
		return
	}
	if !r.hub.Flush(flushTimeout) {
		r.logger.Warn("sentry flush timed out")
	}
}

var _ settings.EventHandler = (*Reporter)(nil)
