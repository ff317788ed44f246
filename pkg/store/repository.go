package store

import (
	"context"

	"github.com/bft-labs/avatarsync/pkg/avatar"
)

// Repository loads and saves the last known-good configuration.
type Repository interface {
	// Load returns the saved configuration, or nil and no error if none exists.
	Load(ctx context.Context) (*avatar.Config, error)

	// Save replaces the saved configuration atomically.
	Save(ctx context.Context, cfg avatar.Config) error
}
