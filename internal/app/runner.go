// Package app runs a settings synchronizer for the CLI. It picks the seed,
// wires logging, persistence and reporting handlers, and swaps the
// synchronizer when the configuration it depends on changes.
package app

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/bft-labs/avatarsync/pkg/avatar"
	"github.com/bft-labs/avatarsync/pkg/fetch"
	"github.com/bft-labs/avatarsync/pkg/lifecycle"
	"github.com/bft-labs/avatarsync/pkg/log"
	"github.com/bft-labs/avatarsync/pkg/settings"
	"github.com/bft-labs/avatarsync/pkg/store"
)

// Config is the subset of CLI configuration the runner acts on.
type Config struct {
	BaseURL      string
	Endpoint     string
	PollInterval time.Duration
	HTTPTimeout  time.Duration
	SeedFile     string
	StateDir     string
	NoCache      bool
	Prefetch     bool
}

// needsRestart reports whether a running synchronizer must be replaced to
// honour next.
func (c Config) needsRestart(next Config) bool {
	return c.BaseURL != next.BaseURL ||
		c.Endpoint != next.Endpoint ||
		c.PollInterval != next.PollInterval ||
		c.HTTPTimeout != next.HTTPTimeout
}

// Runner owns exactly one active synchronizer at a time.
type Runner struct {
	logger          log.Logger
	handlers        []settings.EventHandler
	httpClient      fetch.HTTPClient
	repo            store.Repository
	shutdownTimeout time.Duration
	lc              *lifecycle.Manager

	// mu serializes Start, Reload and Stop.
	mu  sync.Mutex
	cfg Config
	ctx context.Context

	activeMu sync.RWMutex
	active   *settings.Synchronizer
}

// New creates a runner. It fails if module versions are incompatible.
func New(cfg Config, opts ...Option) (*Runner, error) {
	if err := validateModuleVersions(moduleVersions()); err != nil {
		return nil, err
	}

	o := options{logger: log.Nop(), shutdownTimeout: lifecycle.ShutdownTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	repo := o.repo
	if !o.repoSet && cfg.StateDir != "" {
		repo = store.NewFileRepository(cfg.StateDir)
	}
	if cfg.NoCache {
		repo = nil
	}

	return &Runner{
		logger:          o.logger,
		handlers:        o.handlers,
		httpClient:      o.httpClient,
		repo:            repo,
		shutdownTimeout: o.shutdownTimeout,
		lc:              lifecycle.NewManager(o.logger, "runner"),
		cfg:             cfg,
	}, nil
}

// Start resolves the seed and starts the first synchronizer.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.lc.CanStart() {
		if r.lc.State().Done() {
			return lifecycle.ErrClosed
		}
		return lifecycle.ErrAlreadyRunning
	}

	seed, source, err := r.resolveSeed(ctx, r.cfg, r.newFetcher(r.cfg))
	if err != nil {
		return err
	}
	r.logger.Info("resolved initial avatar config", log.String("source", string(source)))

	if err := r.lc.TransitionTo(lifecycle.StateRunning, "Start() called"); err != nil {
		return err
	}
	r.ctx = ctx
	return r.launch(seed, nil)
}

// Reload applies next. The synchronizer is replaced only when the fetch
// target, interval or timeout changed; the replacement is seeded with the
// current configuration so consumers never see a loading state again.
func (r *Runner) Reload(next Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lc.State() != lifecycle.StateRunning {
		return lifecycle.ErrNotRunning
	}

	prev := r.cfg
	r.cfg = next
	if !prev.needsRestart(next) {
		r.logger.Debug("config reloaded, synchronizer unchanged")
		return nil
	}

	old := r.current()
	if err := old.Stop(); err != nil {
		r.logger.Warn("previous synchronizer did not stop cleanly", log.Err(err))
	}
	last := old.Snapshot()

	r.logger.Info("config changed, restarting synchronizer",
		log.String("url", next.BaseURL+next.Endpoint),
		log.Duration("interval", next.PollInterval),
	)
	return r.launch(last.Config, &last)
}

// Stop tears down the active synchronizer. The runner cannot be restarted.
func (r *Runner) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.lc.State() {
	case lifecycle.StateIdle:
		return r.lc.TransitionTo(lifecycle.StateClosed, "Stop() before Start()")
	case lifecycle.StateRunning:
	default:
		return lifecycle.ErrNotRunning
	}

	_ = r.lc.TransitionTo(lifecycle.StateStopping, "Stop() called")
	err := r.current().Stop()
	_ = r.lc.TransitionTo(lifecycle.StateClosed, "teardown complete")
	return err
}

// Snapshot returns the active synchronizer's state, or loading before Start.
func (r *Runner) Snapshot() settings.State {
	if s := r.current(); s != nil {
		return s.Snapshot()
	}
	return settings.State{IsLoading: true}
}

// Refresh asks the active synchronizer for an immediate fetch.
func (r *Runner) Refresh() bool {
	if s := r.current(); s != nil {
		return s.Refresh()
	}
	return false
}

// FetchOnce performs a single fetch outside any synchronizer and saves a
// successful result to the store.
func (r *Runner) FetchOnce(ctx context.Context) (avatar.Config, error) {
	r.mu.Lock()
	cfg := r.cfg
	r.mu.Unlock()

	c, err := r.newFetcher(cfg).Fetch(ctx)
	if err != nil {
		return avatar.Config{}, err
	}
	if r.repo != nil {
		if err := r.repo.Save(ctx, c); err != nil {
			r.logger.Warn("failed to save avatar config", log.Err(err))
		}
	}
	return c, nil
}

// launch builds and starts a synchronizer for r.cfg. Callers hold r.mu.
// When replacing a synchronizer, prev is the old instance's final state.
// If the new instance starts from a different state, handlers receive that
// transition before the new instance can emit anything.
func (r *Runner) launch(seed *avatar.Config, prev *settings.State) error {
	hs := settings.Handlers{loggingHandler{logger: r.logger}}
	if r.repo != nil {
		hs = append(hs, storeSaver{repo: r.repo, logger: r.logger})
	}
	hs = append(hs, r.handlers...)

	s := settings.New(r.newFetcher(r.cfg), seed,
		settings.WithInterval(r.cfg.PollInterval),
		settings.WithShutdownTimeout(r.shutdownTimeout),
		settings.WithLogger(r.logger),
		settings.WithEventHandler(hs),
	)
	if prev != nil {
		if cur := s.Snapshot(); !cur.Equal(*prev) {
			hs.OnStateChange(settings.StateChangeEvent{Previous: *prev, Current: cur})
		}
	}
	if err := s.Start(r.ctx); err != nil {
		return err
	}

	r.activeMu.Lock()
	r.active = s
	r.activeMu.Unlock()
	return nil
}

func (r *Runner) current() *settings.Synchronizer {
	r.activeMu.RLock()
	defer r.activeMu.RUnlock()
	return r.active
}

func (r *Runner) newFetcher(cfg Config) fetch.Fetcher {
	client := r.httpClient
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	return fetch.NewHTTPFetcher(client, cfg.BaseURL, fetch.WithEndpoint(cfg.Endpoint))
}
