// Package lifecycle provides the start/stop state machine shared by
// long-running avatarsync components.
//
// A component moves through Idle, Running, Stopping and Closed. Closed is
// terminal: a torn-down component is never restarted, a new one is built
// instead. Goroutines started by the component are tracked with
// AddWorker/WorkerDone so teardown can wait for them.
//
//	m := lifecycle.NewManager(logger, "settings")
//	if err := m.TransitionTo(lifecycle.StateRunning, "Start() called"); err != nil {
//	    return err
//	}
//	m.AddWorker()
//	go func() { defer m.WorkerDone(); ... }()
//
// # State Machine
//
// Valid state transitions:
//   - Idle -> Running, Closed
//   - Running -> Stopping
//   - Stopping -> Closed
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package lifecycle
