package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Source      SourceConfig      `yaml:"source"`
	Cache       CacheConfig       `yaml:"cache"`
	Distributed DistributedConfig `yaml:"distributed"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// SourceConfig configures the spot price endpoint
type SourceConfig struct {
	Name      string   `yaml:"name"`
	URL       string   `yaml:"url"`
	Timeout   Duration `yaml:"timeout"`
	UserAgent string   `yaml:"user_agent"`
}

// CacheConfig configures cache mode and the persisted summary
type CacheConfig struct {
	Path    string       `yaml:"path"`
	Divisor string       `yaml:"divisor"` // "requested" or "observed"
	Export  ExportConfig `yaml:"export"`
}

// ExportConfig configures the optional machine-readable export of a sample log
type ExportConfig struct {
	Format string `yaml:"format"` // "", "json" or "parquet"
	Path   string `yaml:"path"`
}

// DistributedConfig configures distributed mode
type DistributedConfig struct {
	Producers       int      `yaml:"producers"`
	TimeCap         Duration `yaml:"time_cap"`
	Delay           Duration `yaml:"delay"`
	Contribution    string   `yaml:"contribution"` // "all" or "single"
	ConsumerTimeout Duration `yaml:"consumer_timeout"`
}

// MetricsConfig configures Prometheus metrics
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Textfile string `yaml:"textfile"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Duration is a wrapper around time.Duration for YAML parsing
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	td, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(td)
	return nil
}

// ToDuration converts Duration to time.Duration
func (d Duration) ToDuration() time.Duration {
	return time.Duration(d)
}
