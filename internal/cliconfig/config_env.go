package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (AVATARSYNC_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("base-url", os.Getenv("AVATARSYNC_BASE_URL"), &cfg.BaseURL)
	s.setString("endpoint", os.Getenv("AVATARSYNC_ENDPOINT"), &cfg.Endpoint)
	s.setString("seed-file", os.Getenv("AVATARSYNC_SEED_FILE"), &cfg.SeedFile)
	s.setString("state-dir", os.Getenv("AVATARSYNC_STATE_DIR"), &cfg.StateDir)
	s.setString("listen", os.Getenv("AVATARSYNC_LISTEN"), &cfg.Listen)
	s.setString("log-level", os.Getenv("AVATARSYNC_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("sentry-dsn", os.Getenv("AVATARSYNC_SENTRY_DSN"), &cfg.SentryDSN)
	s.setString("environment", os.Getenv("AVATARSYNC_ENVIRONMENT"), &cfg.Environment)

	if err := s.setDuration("poll", os.Getenv("AVATARSYNC_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("AVATARSYNC_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setBoolFromString("no-cache", os.Getenv("AVATARSYNC_NO_CACHE"), &cfg.NoCache)
	s.setBoolFromString("prefetch", os.Getenv("AVATARSYNC_PREFETCH"), &cfg.Prefetch)

	return nil
}
