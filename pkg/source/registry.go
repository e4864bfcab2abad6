package source

import (
	"fmt"
	"sort"

	"github.com/StrathCole/spotavg/pkg/config"
	"github.com/StrathCole/spotavg/pkg/logging"
	"github.com/StrathCole/spotavg/pkg/metrics"
)

// Factory builds a Source from its configuration.
type Factory func(cfg config.SourceConfig, logger *logging.Logger, m *metrics.Metrics) (Source, error)

var factories = map[string]Factory{
	coinbaseName: func(cfg config.SourceConfig, logger *logging.Logger, m *metrics.Metrics) (Source, error) {
		return NewCoinbaseSource(cfg, logger, m)
	},
}

// New creates the source named by cfg.Name. An empty name selects Coinbase.
func New(cfg config.SourceConfig, logger *logging.Logger, m *metrics.Metrics) (Source, error) {
	name := cfg.Name
	if name == "" {
		name = config.DefaultSourceName
	}

	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownSource, name, List())
	}
	return factory(cfg, logger, m)
}

// List returns all registered source names
func List() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
