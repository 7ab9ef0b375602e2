// Package config holds all termgram configuration: the report service
// endpoint, optional flagging thresholds, local paths, and logging. Config is
// loaded from .termgram/config.yaml with environment overrides; every field
// has a working default so the tool runs with no config file at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// StateDirName is the per-workspace state directory (config, logs).
const StateDirName = ".termgram"

// Config holds all termgram configuration.
type Config struct {
	// Report service connection
	Server ServerConfig `yaml:"server"`

	// Optional NE/NP flagging thresholds forwarded to the service
	Thresholds ThresholdsConfig `yaml:"thresholds"`

	// Local paths
	Paths PathsConfig `yaml:"paths"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the report-processing service.
type ServerConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// TimeoutDuration parses the request timeout, falling back to two minutes
// (uploads of 50 MB reports can be slow to process server-side).
func (s ServerConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// ThresholdsConfig carries the two optional flagging thresholds. The richer
// service variant ignores them; when unset they are not sent at all, so the
// server's own defaults apply either way.
type ThresholdsConfig struct {
	MinClicks *int     `yaml:"min_clicks,omitempty"`
	MinSpend  *float64 `yaml:"min_spend,omitempty"`
}

// Enabled reports whether any threshold is configured.
func (t ThresholdsConfig) Enabled() bool {
	return t.MinClicks != nil || t.MinSpend != nil
}

// PathsConfig configures local directories.
type PathsConfig struct {
	// Where downloaded output workbooks land
	DownloadDir string `yaml:"download_dir"`

	// Drop folder watched for new CSVs (the drag-and-drop analog)
	DropDir string `yaml:"drop_dir"`
}

// LoggingConfig configures the categorized file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
	Level      string          `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:5000",
			Timeout: "120s",
		},
		Paths: PathsConfig{
			DownloadDir: "downloads",
			DropDir:     "",
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// StateDir returns the state directory under the given workspace.
func StateDir(workspace string) string {
	return filepath.Join(workspace, StateDirName)
}

// DefaultPath returns the config file path under the given workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(StateDir(workspace), "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields defaults;
// environment variables override both.
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

// applyEnvOverrides lets environment variables win over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TERMGRAM_SERVER_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("TERMGRAM_TIMEOUT"); v != "" {
		c.Server.Timeout = v
	}
	if v := os.Getenv("TERMGRAM_DOWNLOAD_DIR"); v != "" {
		c.Paths.DownloadDir = v
	}
	if v := os.Getenv("TERMGRAM_DROP_DIR"); v != "" {
		c.Paths.DropDir = v
	}
	if v := os.Getenv("TERMGRAM_MIN_CLICKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Thresholds.MinClicks = &n
		}
	}
	if v := os.Getenv("TERMGRAM_MIN_SPEND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Thresholds.MinSpend = &f
		}
	}
	if v := os.Getenv("TERMGRAM_DEBUG"); v == "1" || v == "true" {
		c.Logging.DebugMode = true
	}
}

// Save writes the configuration back to the given path, creating the state
// directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
