package settings

// StateChangeEvent is emitted when an applied fetch changes the state.
type StateChangeEvent struct {
	Previous State
	Current  State
	Seq      uint64
}

// FetchErrorEvent is emitted for every applied failed fetch.
type FetchErrorEvent struct {
	Err error
	Seq uint64
}

// EventHandler receives synchronizer events.
// Calls are synchronous and ordered; implementations must return quickly
// and must not call Stop.
type EventHandler interface {
	OnStateChange(StateChangeEvent)
	OnFetchError(FetchErrorEvent)
}

// Handlers fans events out to several handlers in order.
type Handlers []EventHandler

func (hs Handlers) OnStateChange(e StateChangeEvent) {
	for _, h := range hs {
		if h != nil {
			h.OnStateChange(e)
		}
	}
}

func (hs Handlers) OnFetchError(e FetchErrorEvent) {
	for _, h := range hs {
		if h != nil {
			h.OnFetchError(e)
		}
	}
}

// HandlerFuncs adapts plain functions to EventHandler. Nil fields are skipped.
type HandlerFuncs struct {
	StateChange func(StateChangeEvent)
	FetchError  func(FetchErrorEvent)
}

func (h HandlerFuncs) OnStateChange(e StateChangeEvent) {
	if h.StateChange != nil {
		h.StateChange(e)
	}
}

func (h HandlerFuncs) OnFetchError(e FetchErrorEvent) {
	if h.FetchError != nil {
		h.FetchError(e)
	}
}
