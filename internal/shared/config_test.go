package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Lyrics.BaseURL != "https://api.lyrics.ovh/v1" {
			t.Errorf("expected lyrics base URL https://api.lyrics.ovh/v1, got %s", config.Lyrics.BaseURL)
		}

		if config.Engine.Backoff != time.Second {
			t.Errorf("expected engine backoff 1s, got %s", config.Engine.Backoff)
		}

		if config.Lyrics.Retries != 0 {
			t.Errorf("expected lyrics retries 0, got %d", config.Lyrics.Retries)
		}

		if config.Lyrics.Timeout != 10*time.Second {
			t.Errorf("expected lyrics timeout 10s, got %s", config.Lyrics.Timeout)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "nested", "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Lyrics.BaseURL != DefaultConfig().Lyrics.BaseURL {
			t.Errorf("created config lyrics base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[log]
level = "debug"

[lyrics]
base_url = "https://lyrics.example.com/api/lyric"
token = "secret"
retries = 2

[lyrics.query]
apikey = "abc"

[mpris]
prefer = "spotify"

[engine]
backoff = "250ms"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Lyrics.BaseURL != "https://lyrics.example.com/api/lyric" {
			t.Errorf("expected custom base URL, got %s", config.Lyrics.BaseURL)
		}
		if config.Lyrics.Query["apikey"] != "abc" {
			t.Errorf("expected apikey query param abc, got %v", config.Lyrics.Query)
		}
		if config.Lyrics.Retries != 2 {
			t.Errorf("expected 2 retries, got %d", config.Lyrics.Retries)
		}
		if config.Engine.Backoff != 250*time.Millisecond {
			t.Errorf("expected backoff 250ms, got %s", config.Engine.Backoff)
		}
		if config.MPRIS.Prefer != "spotify" {
			t.Errorf("expected prefer spotify, got %s", config.MPRIS.Prefer)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected missing server section to keep default port, got %d", config.Server.Port)
		}
	})

	t.Run("LoadConfig Invalid", func(t *testing.T) {
		tc := []struct {
			name   string
			config string
		}{
			{name: "empty base url", config: "[lyrics]\nbase_url = \"\"\n"},
			{name: "negative retries", config: "[lyrics]\nretries = -1\n"},
			{name: "zero backoff", config: "[engine]\nbackoff = \"0s\"\n"},
			{name: "unknown log level", config: "[log]\nlevel = \"loud\"\n"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				configPath := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(configPath, []byte(tt.config), 0644); err != nil {
					t.Fatalf("failed to write test config: %v", err)
				}

				_, err := LoadConfig(configPath)
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("LoadConfig Malformed", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[lyrics\nbase_url ="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
			t.Errorf("expected parse error, got %v", err)
		}
	})

	t.Run("ServerConfig Addr", func(t *testing.T) {
		s := ServerConfig{Host: "127.0.0.1", Port: 4000}
		if s.Addr() != "127.0.0.1:4000" {
			t.Errorf("expected 127.0.0.1:4000, got %s", s.Addr())
		}
	})

	t.Run("DefaultConfigPath", func(t *testing.T) {
		p := DefaultConfigPath()
		if filepath.Base(p) != "config.toml" {
			t.Errorf("expected config.toml file name, got %s", p)
		}
		if !strings.Contains(p, AppName) {
			t.Errorf("expected path to contain %s, got %s", AppName, p)
		}
	})
}
