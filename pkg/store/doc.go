// Package store persists the last known-good avatar configuration so a
// restarted process can seed its synchronizer instead of starting empty.
//
//	repo := store.NewFileRepository("/var/lib/avatarsync")
//	seed, err := repo.Load(ctx) // nil, nil when nothing was saved yet
//
// Writes are atomic (temp file, then rename).
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package store
