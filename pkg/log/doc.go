// Package log is the structured logging port used across avatarsync.
//
// Components depend on the [Logger] interface only. The CLI wires a
// zerolog-backed implementation; libraries and tests default to [Nop].
//
//	logger := log.NewZerolog(zerolog.New(os.Stderr)).Named("settings")
//	logger.Info("config refreshed", log.String("id", cfg.ID))
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package log
