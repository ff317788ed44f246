package lifecycle

import (
	"errors"
	"sync"
	"time"

	"github.com/bft-labs/avatarsync/pkg/log"
)

// Lifecycle errors.
var (
	ErrNotRunning      = errors.New("lifecycle: not running")
	ErrAlreadyRunning  = errors.New("lifecycle: already running")
	ErrClosed          = errors.New("lifecycle: closed")
	ErrShutdownTimeout = errors.New("lifecycle: shutdown timeout")
)

// ShutdownTimeout is the default maximum time to wait for workers on teardown.
const ShutdownTimeout = 10 * time.Second

// Manager guards state transitions and tracks worker goroutines.
type Manager struct {
	mu        sync.RWMutex
	state     State
	wg        sync.WaitGroup
	logger    log.Logger
	component string
}

// NewManager creates a manager in StateIdle.
func NewManager(logger log.Logger, component string) *Manager {
	if logger == nil {
		logger = log.Nop()
	}
	return &Manager{
		state:     StateIdle,
		logger:    logger,
		component: component,
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// TransitionTo moves to newState or returns an error describing why it cannot.
// The state is left unchanged on error.
func (m *Manager) TransitionTo(newState State, reason string) error {
	m.mu.Lock()
	oldState := m.state
	if err := checkTransition(oldState, newState); err != nil {
		m.mu.Unlock()
		return err
	}
	m.state = newState
	m.mu.Unlock()

	m.logger.Debug("state transition",
		log.String("component", m.component),
		log.String("from", oldState.String()),
		log.String("to", newState.String()),
		log.String("reason", reason),
	)
	return nil
}

func checkTransition(from, to State) error {
	switch from {
	case StateIdle:
		if to == StateRunning || to == StateClosed {
			return nil
		}
		return ErrNotRunning
	case StateRunning:
		if to == StateStopping {
			return nil
		}
		return ErrAlreadyRunning
	case StateStopping:
		if to == StateClosed {
			return nil
		}
		return ErrNotRunning
	default:
		return ErrClosed
	}
}

// CanStart reports whether a transition to Running is allowed.
func (m *Manager) CanStart() bool {
	return m.State() == StateIdle
}

// AddWorker increments the worker count.
func (m *Manager) AddWorker() { m.wg.Add(1) }

// WorkerDone decrements the worker count.
func (m *Manager) WorkerDone() { m.wg.Done() }

// WaitWithTimeout waits for all workers to finish.
// Returns ErrShutdownTimeout if timeout expires first.
func (m *Manager) WaitWithTimeout(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		m.logger.Warn("shutdown timeout, workers still running",
			log.String("component", m.component),
			log.Duration("timeout", timeout),
		)
		return ErrShutdownTimeout
	}
}
