// Package config handles configuration loading and validation for answer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/answer/internal/core/answer"
)

// DefaultHistoryDir is where snapshot histories live when history is enabled.
const DefaultHistoryDir = "~/history"

// Config holds the application configuration.
type Config struct {
	Cwd       string              `yaml:"cwd"`
	History   HistoryConfig       `yaml:"history"`
	Questions map[string]Question `yaml:"questions"`
}

// HistoryConfig controls the timestamped snapshot history.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Keep    int    `yaml:"keep"`
}

// Question defines how `answer ask` prompts for a named answer.
type Question struct {
	Message string   `yaml:"message"`
	Default string   `yaml:"default"`
	Options []string `yaml:"options"` // non-empty renders a select
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Cwd: answer.DefaultCwd,
		History: HistoryConfig{
			Enabled: false,
			Dir:     DefaultHistoryDir,
			Keep:    answer.DefaultKeep,
		},
		Questions: map[string]Question{},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Cwd == "" {
		c.Cwd = defaults.Cwd
	}
	if c.History.Dir == "" {
		c.History.Dir = defaults.History.Dir
	}
	if c.History.Keep == 0 {
		c.History.Keep = defaults.History.Keep
	}
	if c.Questions == nil {
		c.Questions = map[string]Question{}
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Cwd == "" {
		return fmt.Errorf("cwd cannot be empty")
	}

	if c.History.Keep < 1 {
		return fmt.Errorf("history.keep must be at least 1")
	}

	return nil
}

// StoreOptions returns the answer options for stores created from this config.
func (c *Config) StoreOptions() answer.Options {
	return answer.Options{Cwd: c.Cwd}
}

// HistoryDir returns the snapshot directory for a named answer.
func (c *Config) HistoryDir(name string) (string, error) {
	dir, err := answer.ExpandHome(c.History.Dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Question returns the configured question for name. A missing message
// falls back to a generic prompt.
func (c *Config) Question(name string) Question {
	q := c.Questions[name]
	if q.Message == "" {
		q.Message = fmt.Sprintf("What is the value for %q?", name)
	}
	return q
}
