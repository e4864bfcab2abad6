package sampler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/StrathCole/spotavg/pkg/config"
	"github.com/StrathCole/spotavg/pkg/console"
	"github.com/StrathCole/spotavg/pkg/export"
	"github.com/StrathCole/spotavg/pkg/logging"
	"github.com/StrathCole/spotavg/pkg/metrics"
	"github.com/StrathCole/spotavg/pkg/sink"
	"github.com/StrathCole/spotavg/pkg/source"
)

const mode = "cache"

// Options configures a Sampler.
type Options struct {
	// Path of the summary file.
	Path string
	// Divisor is config.DivisorRequested (mean over N) or config.DivisorObserved.
	Divisor string
	// Exporter, when set, also writes the sample log to ExportPath.
	Exporter   export.Exporter
	ExportPath string
}

// Sampler runs cache mode.
type Sampler struct {
	source  source.Source
	sink    *sink.FileSink
	out     *console.Printer
	logger  *logging.Logger
	metrics *metrics.Metrics
	opts    Options
}

// New creates a Sampler.
func New(src source.Source, fileSink *sink.FileSink, out *console.Printer, logger *logging.Logger, m *metrics.Metrics, opts Options) (*Sampler, error) {
	switch opts.Divisor {
	case "":
		opts.Divisor = config.DivisorRequested
	case config.DivisorRequested, config.DivisorObserved:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDivisor, opts.Divisor)
	}
	if opts.Path == "" {
		opts.Path = config.DefaultCachePath
	}
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	if out == nil {
		out = console.NewPrinter(nil)
	}

	return &Sampler{
		source:  src,
		sink:    fileSink,
		out:     out,
		logger:  logger,
		metrics: m,
		opts:    opts,
	}, nil
}

// Run performs n sequential fetches, persists the summary and returns it.
// Transport, status, decode and missing-field failures consume the iteration
// without contributing a sample. A format failure aborts the run.
func (s *Sampler) Run(ctx context.Context, n int) (Summary, error) {
	if n < 0 {
		return Summary{}, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}

	start := time.Now()
	summary := Summary{
		Samples:   make([]float64, 0, n),
		Requested: n,
	}
	times := make([]time.Time, 0, n)

	for i := 0; i < n; i++ {
		sample, err := s.source.Fetch(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Summary{}, ctxErr
			}
			if errors.Is(err, source.ErrFormat) {
				return Summary{}, fmt.Errorf("sample %d: %w", i+1, err)
			}
			summary.Failed++
			s.logger.Warn("Skipping sample",
				"iteration", i+1,
				"of", n,
				"kind", source.Kind(err),
				"error", err)
			continue
		}

		s.out.Printf("Received data: Amount=%s, Base=%s, Currency=%s", sample.Amount, sample.Base, sample.Currency)
		summary.Samples = append(summary.Samples, sample.Value)
		times = append(times, sample.Timestamp)
		s.metrics.RecordSample(mode)
	}

	summary.Divisor = n
	if s.opts.Divisor == config.DivisorObserved {
		summary.Divisor = len(summary.Samples)
	}
	summary.Mean = Mean(summary.Samples, summary.Divisor)
	s.metrics.RecordAggregation(mode, summary.Mean, time.Since(start))

	if summary.Failed > 0 {
		s.logger.Warn("Some samples failed",
			"requested", n,
			"failed", summary.Failed,
			"divisor", summary.Divisor)
	}

	s.out.Printf("Cache complete. The average USD price of BTC is: %s", FormatMean(summary.Mean))

	if err := s.sink.Write(s.opts.Path, summary.Render()); err != nil {
		return summary, err
	}
	s.logger.Info("Saved cache results", "path", s.opts.Path, "samples", len(summary.Samples))

	if s.opts.Exporter != nil {
		if err := s.opts.Exporter.Export(export.Records(summary.Samples, times), s.opts.ExportPath); err != nil {
			return summary, fmt.Errorf("failed to export samples to %s: %w", s.opts.ExportPath, err)
		}
		s.logger.Info("Exported samples", "path", s.opts.ExportPath, "format", s.opts.Exporter.Extension())
	}

	return summary, nil
}
