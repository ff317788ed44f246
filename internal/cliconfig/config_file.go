package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	BaseURL      string `toml:"base_url"`
	Endpoint     string `toml:"endpoint"`
	PollInterval string `toml:"poll_interval"`
	HTTPTimeout  string `toml:"http_timeout"`
	SeedFile     string `toml:"seed_file"`
	StateDir     string `toml:"state_dir"`
	NoCache      *bool  `toml:"no_cache"`
	Prefetch     *bool  `toml:"prefetch"`
	Listen       string `toml:"listen"`
	LogLevel     string `toml:"log_level"`
	SentryDSN    string `toml:"sentry_dsn"`
	Environment  string `toml:"environment"`
}

// DefaultFileConfig returns the file written by `avatarsync init`.
func DefaultFileConfig() FileConfig {
	d := DefaultConfig()
	return FileConfig{
		BaseURL:      d.BaseURL,
		Endpoint:     d.Endpoint,
		PollInterval: d.PollInterval.String(),
		HTTPTimeout:  d.HTTPTimeout.String(),
		StateDir:     d.StateDir,
		NoCache:      lo.ToPtr(d.NoCache),
		Prefetch:     lo.ToPtr(d.Prefetch),
		LogLevel:     d.LogLevel,
		Environment:  d.Environment,
	}
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.avatarsync/config.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".avatarsync", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("base-url", fc.BaseURL, &cfg.BaseURL)
	s.setString("endpoint", fc.Endpoint, &cfg.Endpoint)
	s.setString("seed-file", fc.SeedFile, &cfg.SeedFile)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("listen", fc.Listen, &cfg.Listen)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("sentry-dsn", fc.SentryDSN, &cfg.SentryDSN)
	s.setString("environment", fc.Environment, &cfg.Environment)

	if err := s.setDuration("poll", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setBool("no-cache", fc.NoCache, &cfg.NoCache)
	s.setBool("prefetch", fc.Prefetch, &cfg.Prefetch)

	return nil
}

// LoadAndApply loads path, if it exists, then env, both under the changed flags.
// The config watcher uses it to rebuild a Config on reload.
func LoadAndApply(cfg *Config, path string, changed map[string]bool) error {
	if path != "" && FileExists(path) {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return err
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}
	return ApplyEnvConfig(cfg, changed)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
