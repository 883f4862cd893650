// Package config loads dealdesk configuration from YAML with environment
// overrides. A missing config file yields defaults rather than an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all dealdesk configuration.
type Config struct {
	// API configures the contract platform backend.
	API APIConfig `yaml:"api"`

	// Actor identifies the current user on update events and comments.
	Actor string `yaml:"actor"`

	// Logging configures the zap logger.
	Logging LoggingConfig `yaml:"logging"`

	// UI configures the interactive panels.
	UI UIConfig `yaml:"ui"`
}

// APIConfig configures the backend REST client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// LoggingConfig configures logging output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`   // empty means stderr only
}

// UIConfig configures the chat and wizard panels.
type UIConfig struct {
	Theme     string `yaml:"theme"` // dark, light
	WordWrap  int    `yaml:"word_wrap"`
	CharLimit int    `yaml:"char_limit"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000/api",
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		UI: UIConfig{
			Theme:     "dark",
			WordWrap:  80,
			CharLimit: 4096,
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets environment variables win over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DEALDESK_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("DEALDESK_TIMEOUT"); v != "" {
		c.API.Timeout = v
	}
	if v := os.Getenv("DEALDESK_ACTOR"); v != "" {
		c.Actor = v
	}
	if v := os.Getenv("DEALDESK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DEALDESK_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
}

// RequestTimeout parses the configured API timeout, defaulting to 30s.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// DefaultPath returns the per-user config location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dealdesk.yaml"
	}
	return filepath.Join(home, ".config", "dealdesk", "config.yaml")
}

// ActorOrDefault returns the configured actor, falling back to the OS user name so
// update events always carry a real identity.
func (c *Config) ActorOrDefault() string {
	if c.Actor != "" {
		return c.Actor
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
}
