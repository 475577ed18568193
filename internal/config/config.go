// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// DataDir is the directory holding the five JSON data files.
	// It is created on startup if missing.
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server. Set CORS_ORIGINS to a
	// comma-separated list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// MaxBodyBytes caps the size of a request body.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// SeedData copies the embedded sample dataset into DataDir when none of
	// the data files exist yet.
	SeedData bool `env:"SEED_DATA" envDefault:"false"`

	// SeedSampleReviews adds the sample reviews after loading when the
	// dataset has none.
	SeedSampleReviews bool `env:"SEED_SAMPLE_REVIEWS" envDefault:"false"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming every value that cannot be parsed or is out of range.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	var errs []error
	if p, err := strconv.Atoi(cfg.Port); err != nil || p < 1 || p > 65535 {
		errs = append(errs, fmt.Errorf("PORT: %q is not a valid port", cfg.Port))
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		errs = append(errs, errors.New("DATA_DIR: must not be empty"))
	}
	if cfg.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_BODY_BYTES: %d must be positive", cfg.MaxBodyBytes))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

// trimAll trims every entry and drops the empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
