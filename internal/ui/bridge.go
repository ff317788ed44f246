package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bft-labs/avatarsync/pkg/settings"
)

// Bridge forwards synchronizer transitions into a running program.
// It is registered as an event handler before the program exists; events
// that arrive while no program is attached are dropped, and the program
// reads a fresh snapshot on start.
type Bridge struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// NewBridge returns an unattached bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

func (b *Bridge) attach(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	b.mu.Unlock()
}

func (b *Bridge) detach() {
	b.attach(nil)
}

// OnStateChange implements settings.EventHandler.
func (b *Bridge) OnStateChange(e settings.StateChangeEvent) {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send != nil {
		send(StateMsg{State: e.Current})
	}
}

// OnFetchError implements settings.EventHandler. Errors surface through the state.
func (b *Bridge) OnFetchError(settings.FetchErrorEvent) {}

var _ settings.EventHandler = (*Bridge)(nil)
