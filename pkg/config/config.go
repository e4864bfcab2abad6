// Package config provides configuration loading and validation for spotavg.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/StrathCole/spotavg/pkg/version"
)

const (
	// DefaultPath is where the configuration is looked up when --config is not given.
	DefaultPath = "spotavg.yaml"

	// DefaultSourceName selects the Coinbase adapter.
	DefaultSourceName = "coinbase"
	// DefaultSourceURL is the Coinbase spot price endpoint.
	DefaultSourceURL = "https://api.coinbase.com/v2/prices/spot?currency=USD"
	// DefaultCachePath is the file written by cache mode and read by read mode.
	DefaultCachePath = "cache_results.txt"

	DivisorRequested = "requested"
	DivisorObserved  = "observed"

	ContributionAll    = "all"
	ContributionSingle = "single"

	// DefaultDelay is the pause between a producer's fetches.
	DefaultDelay = time.Second

	ExportJSON    = "json"
	ExportParquet = "parquet"
)

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := newConfig()
	applyDefaults(&cfg)
	return &cfg
}

// newConfig presets the fields whose zero value is a valid setting, so that an
// explicit zero in the file survives applyDefaults.
func newConfig() Config {
	return Config{
		Distributed: DistributedConfig{
			Delay: Duration(DefaultDelay),
		},
	}
}

// Load loads configuration from a YAML file.
// When optional is true a missing file yields the defaults instead of an error.
func Load(path string, optional bool) (*Config, error) {
	cleanPath := filepath.Clean(path)
	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	data, err := os.ReadFile(absPath) // #nosec G304 -- Path sanitized with filepath.Clean and filepath.Abs
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration and applies defaults.
func Parse(data []byte) (*Config, error) {
	cfg := newConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults sets default values for optional fields.
func applyDefaults(cfg *Config) {
	Normalize(cfg)

	// Source defaults
	if cfg.Source.Name == "" {
		cfg.Source.Name = DefaultSourceName
	}
	if cfg.Source.URL == "" {
		cfg.Source.URL = DefaultSourceURL
	}
	if cfg.Source.Timeout == 0 {
		cfg.Source.Timeout = Duration(10 * time.Second)
	}
	if cfg.Source.UserAgent == "" {
		cfg.Source.UserAgent = version.AgentString()
	}

	// Cache defaults
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DefaultCachePath
	}
	if cfg.Cache.Divisor == "" {
		cfg.Cache.Divisor = DivisorRequested
	}

	// Distributed defaults
	if cfg.Distributed.Producers == 0 {
		cfg.Distributed.Producers = 5
	}
	if cfg.Distributed.TimeCap == 0 {
		cfg.Distributed.TimeCap = Duration(10 * time.Second)
	}
	if cfg.Distributed.Contribution == "" {
		cfg.Distributed.Contribution = ContributionAll
	}

	// Metrics defaults
	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9091"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}

// Normalize lowercases and trims the enumerated settings so that the
// constructors downstream can compare them exactly.
func Normalize(cfg *Config) {
	cfg.Source.Name = normalizeToken(cfg.Source.Name)
	cfg.Cache.Divisor = normalizeToken(cfg.Cache.Divisor)
	cfg.Cache.Export.Format = normalizeToken(cfg.Cache.Export.Format)
	cfg.Distributed.Contribution = normalizeToken(cfg.Distributed.Contribution)
	cfg.Logging.Level = normalizeToken(cfg.Logging.Level)
	cfg.Logging.Format = normalizeToken(cfg.Logging.Format)
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
