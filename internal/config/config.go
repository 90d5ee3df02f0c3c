// Package config loads the tool configuration from the user's dotdir.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults. The debounce is a parameter, never a hardcoded constant in the
// orchestrator; set debounce_ms to 0 for immediate extraction.
const (
	DefaultServiceURL = "http://localhost:8000"
	DefaultDebounce   = 5 * time.Minute
	DefaultTrialDays  = 14
)

var defaultRetryDelaysMs = []int64{10000, 30000}

// Config is the flat minutes configuration.
type Config struct {
	ServiceURL    string  `json:"service_url"`
	DebounceMs    *int64  `json:"debounce_ms,omitempty"`
	MaxAttempts   int     `json:"max_attempts,omitempty"`
	RetryDelaysMs []int64 `json:"retry_delays_ms,omitempty"`
	TrialDays     int     `json:"trial_days,omitempty"`
	DataDir       string  `json:"data_dir,omitempty"`
}

// Dir returns the dotdir holding config, database and license state.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".minutes"), nil
}

// Load reads config.json from dir, applying defaults for absent fields.
// A missing file yields the full default config.
func Load(dir string) (*Config, error) {
	cfg := &Config{}
	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.ServiceURL == "" {
		cfg.ServiceURL = DefaultServiceURL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelaysMs == nil {
		cfg.RetryDelaysMs = defaultRetryDelaysMs
	}
	if cfg.TrialDays <= 0 {
		cfg.TrialDays = DefaultTrialDays
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

// Save writes config.json to dir.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Debounce returns the configured debounce window D.
func (c *Config) Debounce() time.Duration {
	if c.DebounceMs == nil {
		return DefaultDebounce
	}
	return time.Duration(*c.DebounceMs) * time.Millisecond
}

// RetryDelays returns the fixed backoff schedule between attempts.
func (c *Config) RetryDelays() []time.Duration {
	out := make([]time.Duration, len(c.RetryDelaysMs))
	for i, ms := range c.RetryDelaysMs {
		out[i] = time.Duration(ms) * time.Millisecond
	}
	return out
}
