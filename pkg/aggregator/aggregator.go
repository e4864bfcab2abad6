package aggregator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/StrathCole/spotavg/pkg/config"
	"github.com/StrathCole/spotavg/pkg/console"
	"github.com/StrathCole/spotavg/pkg/logging"
	"github.com/StrathCole/spotavg/pkg/metrics"
	"github.com/StrathCole/spotavg/pkg/sampler"
	"github.com/StrathCole/spotavg/pkg/source"
)

const mode = "distributed"

// Producer exit reasons.
const (
	exitCompleted   = "completed"
	exitContributed = "contributed"
	exitTimeCap     = "time_cap"
	exitCanceled    = "canceled"
)

// Options configures distributed mode.
type Options struct {
	Producers int
	TimeCap   time.Duration
	Delay     time.Duration
	// Contribution is config.ContributionAll or config.ContributionSingle.
	Contribution string
	// ConsumerTimeout bounds the consumer wait; zero waits until producers exit.
	ConsumerTimeout time.Duration
}

// OptionsFromConfig converts the distributed section of the configuration.
func OptionsFromConfig(cfg config.DistributedConfig) Options {
	return Options{
		Producers:       cfg.Producers,
		TimeCap:         cfg.TimeCap.ToDuration(),
		Delay:           cfg.Delay.ToDuration(),
		Contribution:    cfg.Contribution,
		ConsumerTimeout: cfg.ConsumerTimeout.ToDuration(),
	}
}

// Result is what the consumer reports.
type Result struct {
	Mean      float64
	Samples   []float64
	Completed int
	Reason    string
}

// Aggregator runs distributed mode.
type Aggregator struct {
	source  source.Source
	out     *console.Printer
	logger  *logging.Logger
	metrics *metrics.Metrics
	opts    Options
}

// New creates an Aggregator.
func New(src source.Source, out *console.Printer, logger *logging.Logger, m *metrics.Metrics, opts Options) (*Aggregator, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if opts.Producers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidProducers, opts.Producers)
	}
	if opts.TimeCap <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeCap, opts.TimeCap)
	}
	switch opts.Contribution {
	case "":
		opts.Contribution = config.ContributionAll
	case config.ContributionAll, config.ContributionSingle:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownContribution, opts.Contribution)
	}
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	if out == nil {
		out = console.NewPrinter(nil)
	}

	return &Aggregator{
		source:  src,
		out:     out,
		logger:  logger,
		metrics: m,
		opts:    opts,
	}, nil
}

// Run starts the producers and the consumer, joins every producer, and then
// reports the consumer's result. observers receive every accumulator update.
func (a *Aggregator) Run(ctx context.Context, observers ...Observer) (Result, error) {
	start := time.Now()

	if a.metrics != nil {
		observers = append(observers, a.metrics.RecordAccumulator)
	}
	acc := NewAccumulator(a.opts.Producers, observers...)

	a.logger.Info("Starting distributed sampling",
		"producers", a.opts.Producers,
		"time_cap", a.opts.TimeCap,
		"delay", a.opts.Delay,
		"contribution", a.opts.Contribution)

	consumerCtx, cancelConsumer := ctx, context.CancelFunc(func() {})
	if a.opts.ConsumerTimeout > 0 {
		consumerCtx, cancelConsumer = context.WithTimeout(ctx, a.opts.ConsumerTimeout)
	}
	defer cancelConsumer()

	results := make(chan Result, 1)
	go func() {
		results <- a.consume(consumerCtx, acc)
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < a.opts.Producers; i++ {
		id := i
		g.Go(func() error {
			a.produce(gctx, id, acc)
			return nil
		})
	}
	_ = g.Wait()
	acc.Close()

	result := <-results
	if err := ctx.Err(); err != nil {
		return result, err
	}

	a.metrics.RecordAggregation(mode, result.Mean, time.Since(start))
	a.out.Printf("Distributed mode complete. The final average USD price of BTC is: %s", sampler.FormatMean(result.Mean))
	return result, nil
}

// consume waits without spinning until the accumulator is complete (or can no
// longer become complete) and computes the final mean.
func (a *Aggregator) consume(ctx context.Context, acc *Accumulator) Result {
	reason := acc.Wait(ctx)
	mean, snap := acc.Finalize()

	switch {
	case len(snap.Samples) == 0:
		a.logger.Warn("No samples collected, reporting zero mean", "reason", reason)
	case reason != ReasonComplete:
		a.logger.Warn("Finalizing before every producer contributed",
			"reason", reason,
			"completed", snap.Completed,
			"producers", a.opts.Producers)
	default:
		a.logger.Debug("All producers contributed", "samples", len(snap.Samples))
	}

	return Result{
		Mean:      mean,
		Samples:   snap.Samples,
		Completed: snap.Completed,
		Reason:    reason,
	}
}

// produce samples until the completed count reaches K or the time cap is hit.
// The accumulator lock is only held inside Add and Completed, never across
// a fetch or the inter-sample delay.
func (a *Aggregator) produce(ctx context.Context, id int, acc *Accumulator) {
	logger := a.logger.With("producer", id)
	start := time.Now()

	reason := a.loop(ctx, id, acc, logger, start)
	a.metrics.RecordProducerExit(reason)
	logger.Debug("Producer stopped", "reason", reason, "elapsed", time.Since(start))
}

func (a *Aggregator) loop(ctx context.Context, id int, acc *Accumulator, logger *logging.Logger, start time.Time) string {
	k := a.opts.Producers
	for {
		if ctx.Err() != nil {
			return exitCanceled
		}
		if time.Since(start) >= a.opts.TimeCap {
			return exitTimeCap
		}
		if acc.Completed() >= k {
			return exitCompleted
		}

		value, ok := a.sample(ctx, logger)
		if ok {
			completed, _ := acc.Add(id, value)
			a.metrics.RecordSample(mode)
			if completed >= k {
				return exitCompleted
			}
			if a.opts.Contribution == config.ContributionSingle {
				return exitContributed
			}
		}

		if !sleep(ctx, a.opts.Delay) {
			return exitCanceled
		}
	}
}

// sample fetches once. A format failure is recorded as 0.0.
func (a *Aggregator) sample(ctx context.Context, logger *logging.Logger) (float64, bool) {
	s, err := a.source.Fetch(ctx)
	switch {
	case err == nil:
		a.out.Printf("Received data: Amount=%s", s.Amount)
		return s.Value, true
	case ctx.Err() != nil:
		return 0, false
	case errors.Is(err, source.ErrFormat):
		logger.Warn("Unparseable price, recording 0.0", "error", err)
		return 0, true
	default:
		logger.Warn("Skipping sample", "kind", source.Kind(err), "error", err)
		return 0, false
	}
}

// sleep waits d or until ctx is done; it reports whether the full delay elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
