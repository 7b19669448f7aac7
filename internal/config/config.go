// Package config defines the configuration for the bidding engine and
// provides validation helpers.
package config

import (
	"fmt"
	"time"
)

// Duration is a wrapper around time.Duration that supports TOML string
// decoding ("30s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by RENTBID_* environment
// variables.
type Config struct {
	Engine   EngineConfig `toml:"engine"`
	Server   ServerConfig `toml:"server"`
	LogLevel string       `toml:"log_level"`
}

// EngineConfig holds the rule constants governing bidding behavior.
type EngineConfig struct {
	// MinIncrementPct is the fraction of the current high bid a raise must
	// add to be admissible (0.10 = 10%).
	MinIncrementPct float64 `toml:"min_increment_pct"`
	// DefaultMaxRounds is the per-participant bid cap applied to sessions
	// created without an explicit cap.
	DefaultMaxRounds int `toml:"default_max_rounds"`
	// CompensationRate is the fraction of the winning amount owed to the
	// losing participant.
	CompensationRate float64 `toml:"compensation_rate"`
	// SweepInterval is how often the expiration sweeper re-checks active
	// sessions.
	SweepInterval Duration `toml:"sweep_interval"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port   int    `toml:"port"`
	APIKey string `toml:"api_key"`
}

// Defaults returns the built-in configuration used when no file or
// environment overrides are present.
func Defaults() Config {
	return Config{
		Engine: EngineConfig{
			MinIncrementPct:  0.10,
			DefaultMaxRounds: 3,
			CompensationRate: 0.25,
			SweepInterval:    Duration{30 * time.Second},
		},
		Server: ServerConfig{
			Port: 8080,
		},
		LogLevel: "info",
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Engine.MinIncrementPct <= 0 || c.Engine.MinIncrementPct >= 1 {
		return fmt.Errorf("config: min_increment_pct must be in (0, 1), got %v", c.Engine.MinIncrementPct)
	}
	if c.Engine.DefaultMaxRounds < 1 {
		return fmt.Errorf("config: default_max_rounds must be at least 1, got %d", c.Engine.DefaultMaxRounds)
	}
	if c.Engine.CompensationRate < 0 || c.Engine.CompensationRate > 1 {
		return fmt.Errorf("config: compensation_rate must be in [0, 1], got %v", c.Engine.CompensationRate)
	}
	if c.Engine.SweepInterval.Duration <= 0 {
		return fmt.Errorf("config: sweep_interval must be positive, got %v", c.Engine.SweepInterval)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: port must be in [1, 65535], got %d", c.Server.Port)
	}
	return nil
}
