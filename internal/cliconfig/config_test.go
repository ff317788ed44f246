package cliconfig

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %v, want %v", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Endpoint != "/api/avatar-config" {
		t.Errorf("Endpoint = %v, want /api/avatar-config", cfg.Endpoint)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if !strings.Contains(cfg.StateDir, ".avatarsync") {
		t.Errorf("StateDir = %v, should contain .avatarsync", cfg.StateDir)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		c := DefaultConfig()
		c.StateDir = "/tmp/state"
		return c
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		wantBaseURL string
		wantPath    string
	}{
		{
			name:        "defaults",
			mutate:      func(*Config) {},
			wantBaseURL: DefaultBaseURL,
			wantPath:    "/api/avatar-config",
		},
		{
			name:        "trailing slash trimmed",
			mutate:      func(c *Config) { c.BaseURL = "https://avatars.example.com/" },
			wantBaseURL: "https://avatars.example.com",
		},
		{
			name:        "empty base url falls back",
			mutate:      func(c *Config) { c.BaseURL = "" },
			wantBaseURL: DefaultBaseURL,
		},
		{
			name:     "endpoint gets leading slash",
			mutate:   func(c *Config) { c.Endpoint = "v2/avatar" },
			wantPath: "/v2/avatar",
		},
		{
			name:    "unsupported scheme",
			mutate:  func(c *Config) { c.BaseURL = "ftp://example.com" },
			wantErr: true,
		},
		{
			name:    "missing host",
			mutate:  func(c *Config) { c.BaseURL = "http://" },
			wantErr: true,
		},
		{
			name:    "invalid poll interval",
			mutate:  func(c *Config) { c.PollInterval = 0 },
			wantErr: true,
		},
		{
			name:    "invalid timeout",
			mutate:  func(c *Config) { c.HTTPTimeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "loud" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)

			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tt.wantBaseURL != "" && c.BaseURL != tt.wantBaseURL {
				t.Errorf("BaseURL = %v, want %v", c.BaseURL, tt.wantBaseURL)
			}
			if tt.wantPath != "" && c.Endpoint != tt.wantPath {
				t.Errorf("Endpoint = %v, want %v", c.Endpoint, tt.wantPath)
			}
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer

	l := NewLogger(&buf, "warn")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}

	buf.Reset()
	l = NewLogger(&buf, "bogus")
	l.Info().Msg("fallback")
	if !strings.Contains(buf.String(), "fallback") {
		t.Errorf("unparsable level should fall back to info: %q", buf.String())
	}
}
