package config

import "fmt"

// Validate checks configuration for errors. Enumerated values are expected in
// the form produced by Normalize.
func Validate(cfg *Config) error {
	if cfg.Source.URL == "" {
		return fmt.Errorf("source config: %w", ErrSourceURLRequired)
	}

	if err := validateCacheConfig(&cfg.Cache); err != nil {
		return fmt.Errorf("cache config: %w", err)
	}

	if err := validateDistributedConfig(&cfg.Distributed); err != nil {
		return fmt.Errorf("distributed config: %w", err)
	}

	if err := validateLoggingConfig(&cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

func validateCacheConfig(cfg *CacheConfig) error {
	if cfg.Path == "" {
		return ErrCachePathRequired
	}

	switch cfg.Divisor {
	case DivisorRequested, DivisorObserved:
	default:
		return fmt.Errorf("%w: %s (must be 'requested' or 'observed')", ErrInvalidDivisor, cfg.Divisor)
	}

	switch cfg.Export.Format {
	case "":
	case ExportJSON, ExportParquet:
		if cfg.Export.Path == "" {
			return ErrExportPathRequired
		}
	default:
		return fmt.Errorf("%w: %s (must be 'json' or 'parquet')", ErrInvalidExportFormat, cfg.Export.Format)
	}

	return nil
}

func validateDistributedConfig(cfg *DistributedConfig) error {
	if cfg.Producers < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidProducers, cfg.Producers)
	}
	if cfg.TimeCap.ToDuration() <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeCap, cfg.TimeCap.ToDuration())
	}
	if cfg.Delay.ToDuration() < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDelay, cfg.Delay.ToDuration())
	}

	switch cfg.Contribution {
	case ContributionAll, ContributionSingle:
	default:
		return fmt.Errorf("%w: %s (must be 'all' or 'single')", ErrInvalidContribution, cfg.Contribution)
	}

	return nil
}

func validateLoggingConfig(cfg *LoggingConfig) error {
	switch cfg.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, cfg.Level)
	}

	switch cfg.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: %s (must be 'json' or 'text')", ErrInvalidLogFormat, cfg.Format)
	}

	return nil
}
