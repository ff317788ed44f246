package settings

import (
	"context"
	"sync"
	"time"

	"github.com/df-mc/atomic"

	"github.com/bft-labs/avatarsync/pkg/avatar"
	"github.com/bft-labs/avatarsync/pkg/fetch"
	"github.com/bft-labs/avatarsync/pkg/lifecycle"
	"github.com/bft-labs/avatarsync/pkg/log"
)

// Synchronizer owns the current configuration and its refresh timer.
type Synchronizer struct {
	fetcher         fetch.Fetcher
	seeded          bool
	interval        time.Duration
	shutdownTimeout time.Duration
	logger          log.Logger
	handler         EventHandler
	lc              *lifecycle.Manager

	state  atomic.Value[State]
	closed atomic.Bool
	seq    atomic.Uint64

	// mu serializes apply, Start, Stop and Refresh.
	mu      sync.Mutex
	applied uint64
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a synchronizer in the idle state. A non-nil seed is copied
// and shown immediately; otherwise the state starts out loading.
func New(fetcher fetch.Fetcher, seed *avatar.Config, opts ...Option) *Synchronizer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Synchronizer{
		fetcher:         fetcher,
		seeded:          seed != nil,
		interval:        o.interval,
		shutdownTimeout: o.shutdownTimeout,
		logger:          o.logger,
		handler:         o.handler,
		lc:              lifecycle.NewManager(o.logger, "settings"),
	}
	if seed != nil {
		c := *seed
		s.state.Store(State{Config: &c})
	} else {
		s.state.Store(State{IsLoading: true})
	}
	return s
}

// Snapshot returns the current state. Safe for concurrent use.
func (s *Synchronizer) Snapshot() State {
	return s.state.Load()
}

// Interval returns the refresh period.
func (s *Synchronizer) Interval() time.Duration {
	return s.interval
}

// Start begins the refresh cycle. Without a seed a fetch is issued at once.
// A second call returns lifecycle.ErrAlreadyRunning and starts nothing.
// Cancelling ctx stops refreshing and discards pending results.
func (s *Synchronizer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lc.TransitionTo(lifecycle.StateRunning, "Start() called"); err != nil {
		return err
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	if !s.seeded {
		s.issue(s.ctx)
	}

	s.lc.AddWorker()
	go s.tick(s.ctx)

	s.logger.Info("settings synchronizer started",
		log.Bool("seeded", s.seeded),
		log.Duration("interval", s.interval),
	)
	return nil
}

// Refresh issues an immediate fetch outside the regular cycle.
// Reports false when the synchronizer is not running.
func (s *Synchronizer) Refresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lc.State() != lifecycle.StateRunning || s.ctx.Err() != nil {
		return false
	}
	s.issue(s.ctx)
	return true
}

// Stop tears the synchronizer down: the timer is stopped, in-flight
// requests are cancelled and their results discarded. Stop on an idle
// synchronizer closes it without fetching.
func (s *Synchronizer) Stop() error {
	s.mu.Lock()
	s.closed.Store(true)

	switch s.lc.State() {
	case lifecycle.StateIdle:
		err := s.lc.TransitionTo(lifecycle.StateClosed, "Stop() before Start()")
		s.mu.Unlock()
		return err
	case lifecycle.StateRunning:
	default:
		s.mu.Unlock()
		return lifecycle.ErrNotRunning
	}

	_ = s.lc.TransitionTo(lifecycle.StateStopping, "Stop() called")
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	err := s.lc.WaitWithTimeout(s.shutdownTimeout)
	_ = s.lc.TransitionTo(lifecycle.StateClosed, "teardown complete")

	s.logger.Info("settings synchronizer stopped")
	return err
}

// tick drives the single refresh timer of this instance.
func (s *Synchronizer) tick(ctx context.Context) {
	defer s.lc.WorkerDone()

	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if ctx.Err() != nil || s.closed.Load() {
				return
			}
			s.issue(ctx)
		}
	}
}

// issue runs one fetch in a tracked worker. Callers are either holding mu
// or running as a tracked worker themselves.
func (s *Synchronizer) issue(ctx context.Context) {
	seq := s.seq.Inc()
	s.lc.AddWorker()
	go func() {
		defer s.lc.WorkerDone()
		cfg, err := s.fetcher.Fetch(ctx)
		s.apply(ctx, seq, cfg, err)
	}()
}

func (s *Synchronizer) apply(ctx context.Context, seq uint64, cfg avatar.Config, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() || ctx.Err() != nil {
		s.logger.Debug("discarding fetch result after teardown", log.Uint64("seq", seq))
		return
	}
	if seq <= s.applied {
		s.logger.Debug("dropping stale fetch result",
			log.Uint64("seq", seq),
			log.Uint64("applied", s.applied),
		)
		return
	}
	s.applied = seq

	prev := s.state.Load()
	var next State
	if err != nil {
		// keep the last known-good config, only flip the flags
		next = State{Config: prev.Config, IsError: true}
		s.logger.Warn("avatar config fetch failed", log.Err(err), log.Uint64("seq", seq))
		if s.handler != nil {
			s.handler.OnFetchError(FetchErrorEvent{Err: err, Seq: seq})
		}
	} else {
		next = State{Config: &cfg}
	}

	if next.Equal(prev) {
		return
	}
	s.state.Store(next)
	if s.handler != nil {
		s.handler.OnStateChange(StateChangeEvent{Previous: prev, Current: next, Seq: seq})
	}
}
