package lifecycle

import (
	"errors"
	"testing"
	"time"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateRunning, "running"},
		{StateStopping, "stopping"},
		{StateClosed, "closed"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}

func TestManager_TransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		to      State
		wantErr error
	}{
		{"idle to running", StateIdle, StateRunning, nil},
		{"idle to closed", StateIdle, StateClosed, nil},
		{"running to stopping", StateRunning, StateStopping, nil},
		{"stopping to closed", StateStopping, StateClosed, nil},
		{"idle to stopping", StateIdle, StateStopping, ErrNotRunning},
		{"running to running", StateRunning, StateRunning, ErrAlreadyRunning},
		{"running to closed", StateRunning, StateClosed, ErrAlreadyRunning},
		{"stopping to running", StateStopping, StateRunning, ErrNotRunning},
		{"closed to running", StateClosed, StateRunning, ErrClosed},
		{"closed to idle", StateClosed, StateIdle, ErrClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(nil, "test")
			m.state = tt.from

			err := m.TransitionTo(tt.to, "test")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("TransitionTo() error = %v, want %v", err, tt.wantErr)
			}
			want := tt.to
			if tt.wantErr != nil {
				want = tt.from
			}
			if m.State() != want {
				t.Errorf("state = %v, want %v", m.State(), want)
			}
		})
	}
}

func TestManager_CanStart(t *testing.T) {
	m := NewManager(nil, "test")
	if !m.CanStart() {
		t.Fatal("new manager should be startable")
	}
	_ = m.TransitionTo(StateClosed, "closed before start")
	if m.CanStart() {
		t.Error("closed manager must not be startable")
	}
}

func TestManager_WaitWithTimeout(t *testing.T) {
	m := NewManager(nil, "test")

	release := make(chan struct{})
	m.AddWorker()
	go func() {
		defer m.WorkerDone()
		<-release
	}()

	if err := m.WaitWithTimeout(20 * time.Millisecond); !errors.Is(err, ErrShutdownTimeout) {
		t.Fatalf("WaitWithTimeout() = %v, want ErrShutdownTimeout", err)
	}

	close(release)
	if err := m.WaitWithTimeout(time.Second); err != nil {
		t.Fatalf("WaitWithTimeout() = %v, want nil", err)
	}
}

func TestState_Done(t *testing.T) {
	for _, s := range []State{StateIdle, StateRunning} {
		if s.Done() {
			t.Errorf("%s.Done() = true, want false", s)
		}
	}
	for _, s := range []State{StateStopping, StateClosed} {
		if !s.Done() {
			t.Errorf("%s.Done() = false, want true", s)
		}
	}
}
