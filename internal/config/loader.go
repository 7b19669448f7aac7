package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path (skipped when path is empty),
// merges it on top of the built-in defaults, applies RENTBID_* environment
// variable overrides, and returns the final Config. The returned Config has
// NOT been validated; the caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known RENTBID_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators tune rule constants at deploy time without touching the
// TOML file.
func applyEnvOverrides(cfg *Config) {
	setFloat(&cfg.Engine.MinIncrementPct, "RENTBID_MIN_INCREMENT_PCT")
	setInt(&cfg.Engine.DefaultMaxRounds, "RENTBID_DEFAULT_MAX_ROUNDS")
	setFloat(&cfg.Engine.CompensationRate, "RENTBID_COMPENSATION_RATE")
	setDuration(&cfg.Engine.SweepInterval, "RENTBID_SWEEP_INTERVAL")

	setInt(&cfg.Server.Port, "RENTBID_PORT")
	setStr(&cfg.Server.APIKey, "RENTBID_API_KEY")

	setStr(&cfg.LogLevel, "RENTBID_LOG_LEVEL")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setDuration(dst *Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
