// Package config handles YAML configuration for shotty.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultProfile is the shared-config profile used when none is given.
	DefaultProfile = "shotty"

	// DefaultSnapshotDescription is attached to every snapshot we create.
	DefaultSnapshotDescription = "Created by Snapshotalyzer 30000"

	// DefaultWaitTimeout bounds each stop/start wait. 40 attempts x 15s.
	DefaultWaitTimeout = 10 * time.Minute
)

// Config is the root configuration structure.
type Config struct {
	AWS      AWSConfig      `yaml:"aws"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Log      LogConfig      `yaml:"log"`
	OTEL     OTELConfig     `yaml:"otel"`
}

// AWSConfig holds session settings.
type AWSConfig struct {
	Profile string `yaml:"profile"`
	Region  string `yaml:"region"`
}

// SnapshotConfig holds settings for the instance snapshot command.
type SnapshotConfig struct {
	Description    string        `yaml:"description"`
	WaitTimeoutStr string        `yaml:"wait_timeout"`
	WaitTimeout    time.Duration `yaml:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// OTELConfig holds OpenTelemetry settings.
type OTELConfig struct {
	Endpoint    string        `yaml:"endpoint"`
	Insecure    bool          `yaml:"insecure"`
	ServiceName string        `yaml:"service_name"`
	Traces      TracesConfig  `yaml:"traces"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

// TracesConfig holds tracing settings.
type TracesConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate float64 `yaml:"sample_rate"`
}

// MetricsConfig holds metrics settings.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Overrides are values taken from command-line flags. Empty fields leave
// the file value alone.
type Overrides struct {
	Profile string
	Region  string
	Debug   bool
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Snapshot.WaitTimeout = DefaultWaitTimeout
	return cfg
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)

	if err := parseWaitTimeout(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.AWS.Profile == "" {
		cfg.AWS.Profile = DefaultProfile
	}
	if cfg.Snapshot.Description == "" {
		cfg.Snapshot.Description = DefaultSnapshotDescription
	}
	if cfg.Snapshot.WaitTimeoutStr == "" {
		cfg.Snapshot.WaitTimeoutStr = DefaultWaitTimeout.String()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.OTEL.ServiceName == "" {
		cfg.OTEL.ServiceName = "shotty"
	}
	if cfg.OTEL.Traces.Enabled && cfg.OTEL.Traces.SampleRate == 0 {
		cfg.OTEL.Traces.SampleRate = 1.0
	}
}

func parseWaitTimeout(cfg *Config) error {
	d, err := time.ParseDuration(cfg.Snapshot.WaitTimeoutStr)
	if err != nil {
		return fmt.Errorf("parse wait_timeout %q: %w", cfg.Snapshot.WaitTimeoutStr, err)
	}
	cfg.Snapshot.WaitTimeout = d
	return nil
}

// ApplyOverrides copies non-empty flag values over the file values.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Profile != "" {
		c.AWS.Profile = o.Profile
	}
	if o.Region != "" {
		c.AWS.Region = o.Region
	}
	if o.Debug {
		c.Log.Level = "debug"
	}
}

// Validate checks the configuration is valid.
func (c *Config) Validate() error {
	if c.Snapshot.WaitTimeout <= 0 {
		return fmt.Errorf("snapshot: wait_timeout must be positive (got %s)", c.Snapshot.WaitTimeout)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	if c.OTEL.Traces.SampleRate < 0.0 || c.OTEL.Traces.SampleRate > 1.0 {
		return fmt.Errorf("otel: traces.sample_rate must be between 0.0 and 1.0 (got %v)", c.OTEL.Traces.SampleRate)
	}
	return nil
}
