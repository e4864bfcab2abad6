package cli

import (
	"context"
	"fmt"

	"github.com/StrathCole/spotavg/pkg/aggregator"
	"github.com/StrathCole/spotavg/pkg/config"
	"github.com/StrathCole/spotavg/pkg/console"
	"github.com/StrathCole/spotavg/pkg/export"
	"github.com/StrathCole/spotavg/pkg/logging"
	"github.com/StrathCole/spotavg/pkg/metrics"
	"github.com/StrathCole/spotavg/pkg/sampler"
	"github.com/StrathCole/spotavg/pkg/sink"
)

type runner struct {
	deps    Deps
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Metrics
}

func (r *runner) cache(ctx context.Context, times int) error {
	r.logger.Info("Cache mode will run", "times", times, "path", r.cfg.Cache.Path, "divisor", r.cfg.Cache.Divisor)

	src, err := r.deps.NewSource(r.cfg.Source, r.logger, r.metrics)
	if err != nil {
		return fmt.Errorf("failed to create source: %w", err)
	}

	opts := sampler.Options{
		Path:    r.cfg.Cache.Path,
		Divisor: r.cfg.Cache.Divisor,
	}
	if r.cfg.Cache.Export.Format != "" {
		exp, err := export.New(r.cfg.Cache.Export.Format, r.deps.Fs)
		if err != nil {
			return err
		}
		opts.Exporter = exp
		opts.ExportPath = r.cfg.Cache.Export.Path
	}

	s, err := sampler.New(src, sink.NewFileSink(r.deps.Fs), console.NewPrinter(r.deps.Stdout), r.logger, r.metrics, opts)
	if err != nil {
		return err
	}

	if _, err := s.Run(ctx, times); err != nil {
		return fmt.Errorf("cache run failed: %w", err)
	}
	return nil
}

func (r *runner) read() error {
	reader := sink.NewReader(sink.NewFileSink(r.deps.Fs))
	if err := reader.Dump(r.cfg.Cache.Path, r.deps.Stdout); err != nil {
		r.logger.Error("Failed to read from file or file not found", "path", r.cfg.Cache.Path, "error", err)
		return err
	}
	r.logger.Debug("Read complete", "path", r.cfg.Cache.Path)
	return nil
}

func (r *runner) distributed(ctx context.Context) error {
	src, err := r.deps.NewSource(r.cfg.Source, r.logger, r.metrics)
	if err != nil {
		return fmt.Errorf("failed to create source: %w", err)
	}

	agg, err := aggregator.New(src, console.NewPrinter(r.deps.Stdout), r.logger, r.metrics, aggregator.OptionsFromConfig(r.cfg.Distributed))
	if err != nil {
		return err
	}

	result, err := agg.Run(ctx)
	if err != nil {
		return fmt.Errorf("distributed run interrupted: %w", err)
	}
	r.logger.Info("Distributed run finished",
		"mean", result.Mean,
		"samples", len(result.Samples),
		"completed", result.Completed,
		"reason", result.Reason)
	return nil
}
