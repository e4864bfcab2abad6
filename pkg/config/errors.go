// Package config provides configuration loading and validation for spotavg.
package config

import "errors"

var (
	// ErrInvalidDivisor indicates that cache.divisor is not recognized.
	ErrInvalidDivisor = errors.New("invalid cache.divisor")
	// ErrInvalidExportFormat indicates that cache.export.format is not recognized.
	ErrInvalidExportFormat = errors.New("invalid cache.export.format")
	// ErrExportPathRequired indicates that an export format was set without a path.
	ErrExportPathRequired = errors.New("cache.export.path must be specified when an export format is set")
	// ErrCachePathRequired indicates that cache.path is empty.
	ErrCachePathRequired = errors.New("cache.path must be specified")
	// ErrSourceURLRequired indicates that source.url is empty.
	ErrSourceURLRequired = errors.New("source.url must be specified")
	// ErrInvalidProducers indicates that distributed.producers is below one.
	ErrInvalidProducers = errors.New("distributed.producers must be >= 1")
	// ErrInvalidTimeCap indicates that distributed.time_cap is not positive.
	ErrInvalidTimeCap = errors.New("distributed.time_cap must be > 0")
	// ErrInvalidDelay indicates that distributed.delay is negative.
	ErrInvalidDelay = errors.New("distributed.delay must be >= 0")
	// ErrInvalidContribution indicates that distributed.contribution is not recognized.
	ErrInvalidContribution = errors.New("invalid distributed.contribution")
	// ErrInvalidLogLevel indicates that the log level is invalid.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat indicates that the log format is invalid.
	ErrInvalidLogFormat = errors.New("invalid log format")
)
