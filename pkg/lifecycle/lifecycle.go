package lifecycle

// State is where a component sits in its start/stop cycle.
// Transitions only move forward: idle, running, stopping, closed.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopping
	StateClosed
)

var stateNames = [...]string{
	StateIdle:     "idle",
	StateRunning:  "running",
	StateStopping: "stopping",
	StateClosed:   "closed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Done reports whether the component has begun or finished teardown.
func (s State) Done() bool {
	return s >= StateStopping
}
