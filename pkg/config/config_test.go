package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultSourceName, cfg.Source.Name)
	assert.Equal(t, DefaultSourceURL, cfg.Source.URL)
	assert.Equal(t, 10*time.Second, cfg.Source.Timeout.ToDuration())
	assert.Equal(t, DefaultCachePath, cfg.Cache.Path)
	assert.Equal(t, DivisorRequested, cfg.Cache.Divisor)
	assert.Equal(t, 5, cfg.Distributed.Producers)
	assert.Equal(t, 10*time.Second, cfg.Distributed.TimeCap.ToDuration())
	assert.Equal(t, time.Second, cfg.Distributed.Delay.ToDuration())
	assert.Equal(t, ContributionAll, cfg.Distributed.Contribution)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	require.NoError(t, Validate(cfg))
}

func TestParse(t *testing.T) {
	data := []byte(`
source:
  url: http://localhost:1234/spot
  timeout: 2s
cache:
  path: out.txt
  divisor: observed
  export:
    format: parquet
    path: samples.parquet
distributed:
  producers: 3
  time_cap: 500ms
  delay: 50ms
  contribution: single
metrics:
  enabled: true
logging:
  level: debug
  format: json
`)

	cfg, err := Parse(data)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, "http://localhost:1234/spot", cfg.Source.URL)
	assert.Equal(t, 2*time.Second, cfg.Source.Timeout.ToDuration())
	assert.Equal(t, "out.txt", cfg.Cache.Path)
	assert.Equal(t, DivisorObserved, cfg.Cache.Divisor)
	assert.Equal(t, ExportParquet, cfg.Cache.Export.Format)
	assert.Equal(t, 3, cfg.Distributed.Producers)
	assert.Equal(t, 500*time.Millisecond, cfg.Distributed.TimeCap.ToDuration())
	assert.Equal(t, 50*time.Millisecond, cfg.Distributed.Delay.ToDuration())
	assert.Equal(t, ContributionSingle, cfg.Distributed.Contribution)
	assert.Equal(t, ":9091", cfg.Metrics.Addr)
}

func TestParse_BadDuration(t *testing.T) {
	_, err := Parse([]byte("source:\n  timeout: soon\n"))
	require.Error(t, err)
}

func TestParse_NormalizesEnumerations(t *testing.T) {
	cfg, err := Parse([]byte(`
source:
  name: " Coinbase "
cache:
  divisor: Observed
  export:
    format: JSON
    path: out.json
distributed:
  contribution: Single
logging:
  level: DEBUG
  format: Text
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultSourceName, cfg.Source.Name)
	assert.Equal(t, DivisorObserved, cfg.Cache.Divisor)
	assert.Equal(t, ExportJSON, cfg.Cache.Export.Format)
	assert.Equal(t, ContributionSingle, cfg.Distributed.Contribution)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	require.NoError(t, Validate(cfg))
}

func TestValidate_RequiresNormalizedValues(t *testing.T) {
	cfg := Default()
	cfg.Cache.Divisor = "Observed"
	assert.ErrorIs(t, Validate(cfg), ErrInvalidDivisor)

	Normalize(cfg)
	assert.NoError(t, Validate(cfg))
}

func TestParse_Delay(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want time.Duration
	}{
		{name: "omitted", yaml: "distributed:\n  producers: 2\n", want: time.Second},
		{name: "explicit zero", yaml: "distributed:\n  delay: 0s\n", want: 0},
		{name: "explicit", yaml: "distributed:\n  delay: 250ms\n", want: 250 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Distributed.Delay.ToDuration())
			require.NoError(t, Validate(cfg))
		})
	}
}

func TestLoad_OptionalMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, DefaultCachePath, cfg.Cache.Path)

	_, err = Load(path, false)
	require.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spotavg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  path: elsewhere.txt\n"), 0o600))

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere.txt", cfg.Cache.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"bad divisor", func(c *Config) { c.Cache.Divisor = "median" }, ErrInvalidDivisor},
		{"empty cache path", func(c *Config) { c.Cache.Path = "" }, ErrCachePathRequired},
		{"bad export format", func(c *Config) { c.Cache.Export.Format = "csv" }, ErrInvalidExportFormat},
		{"export without path", func(c *Config) { c.Cache.Export.Format = ExportJSON }, ErrExportPathRequired},
		{"zero producers", func(c *Config) { c.Distributed.Producers = 0 }, ErrInvalidProducers},
		{"zero time cap", func(c *Config) { c.Distributed.TimeCap = 0 }, ErrInvalidTimeCap},
		{"negative delay", func(c *Config) { c.Distributed.Delay = Duration(-time.Second) }, ErrInvalidDelay},
		{"bad contribution", func(c *Config) { c.Distributed.Contribution = "some" }, ErrInvalidContribution},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, ErrInvalidLogLevel},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
		{"empty url", func(c *Config) { c.Source.URL = "" }, ErrSourceURLRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.wantErr)
		})
	}
}
