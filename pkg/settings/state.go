package settings

import "github.com/bft-labs/avatarsync/pkg/avatar"

// State is the consumer-facing view of the synchronizer.
// Config is shared between snapshots and must not be modified.
type State struct {
	Config    *avatar.Config `json:"config"`
	IsLoading bool           `json:"isLoading"`
	IsError   bool           `json:"isError"`
}

// Equal compares two states by value.
func (s State) Equal(o State) bool {
	if s.IsLoading != o.IsLoading || s.IsError != o.IsError {
		return false
	}
	if s.Config == nil || o.Config == nil {
		return s.Config == o.Config
	}
	return *s.Config == *o.Config
}
