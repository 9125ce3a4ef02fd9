package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/20after4/configdir"
	"github.com/BurntSushi/toml"
)

// AppName names the config directory and default log file.
const AppName = "lyriek"

const configFile = "config.toml"

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Lyrics LyricsConfig `toml:"lyrics"`
	MPRIS  MPRISConfig  `toml:"mpris"`
	Engine EngineConfig `toml:"engine"`
	Server ServerConfig `toml:"server"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // used by the TUI
}

// LyricsConfig contains the lyrics lookup service settings.
//
// Endpoint, query parameters and token are deployment configuration and never compiled in.
type LyricsConfig struct {
	BaseURL     string            `toml:"base_url"`
	Token       string            `toml:"token"`
	UserAgent   string            `toml:"user_agent"`
	Timeout     time.Duration     `toml:"timeout"`
	Retries     int               `toml:"retries"`
	RateLimit   float64           `toml:"rate_limit"`
	HeadersFile string            `toml:"headers_file"`
	Query       map[string]string `toml:"query"`
}

// MPRISConfig contains control bus settings.
type MPRISConfig struct {
	Prefer string `toml:"prefer"` // substring of a bus name to probe first
}

// EngineConfig contains now-playing engine settings.
type EngineConfig struct {
	Backoff time.Duration `toml:"backoff"`
}

// ServerConfig contains the local status server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate reports configuration values the engine cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Lyrics.BaseURL) == "" {
		return fmt.Errorf("%w: lyrics.base_url is required", ErrInvalidConfig)
	}
	if c.Lyrics.Retries < 0 {
		return fmt.Errorf("%w: lyrics.retries must not be negative", ErrInvalidConfig)
	}
	if c.Engine.Backoff <= 0 {
		return fmt.Errorf("%w: engine.backoff must be positive", ErrInvalidConfig)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns config.toml inside the per-user config directory.
func DefaultConfigPath() string {
	return filepath.Join(configdir.LocalConfig(AppName), configFile)
}

// DefaultLogPath returns the TUI log file inside the per-user cache directory.
func DefaultLogPath() string {
	return filepath.Join(configdir.LocalCache(AppName), AppName+".log")
}
