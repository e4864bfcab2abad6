// Package metrics provides Prometheus metrics for spotavg runs.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes used as the "outcome" label.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the collectors of one process. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// FetchTotal counts price requests by source and outcome.
	FetchTotal *prometheus.CounterVec
	// FetchDuration observes the latency of price requests.
	FetchDuration *prometheus.HistogramVec
	// SamplesTotal counts samples accepted into a run by mode.
	SamplesTotal *prometheus.CounterVec
	// LastMean is the most recent mean computed by mode.
	LastMean *prometheus.GaugeVec
	// AggregationDuration observes how long a sampling run took end to end.
	AggregationDuration *prometheus.HistogramVec
	// AccumulatorSamples is the current length of the distributed accumulator.
	AccumulatorSamples prometheus.Gauge
	// AccumulatorCompleted is the current completed-producer count.
	AccumulatorCompleted prometheus.Gauge
	// ProducerExitsTotal counts producer terminations by reason.
	ProducerExitsTotal *prometheus.CounterVec
}

// New creates the collectors and registers them in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spotavg_fetch_total",
				Help: "Total number of spot price requests",
			},
			[]string{"source", "outcome"},
		),
		FetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spotavg_fetch_duration_seconds",
				Help:    "Latency of spot price requests",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"source"},
		),
		SamplesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spotavg_samples_total",
				Help: "Total number of samples accepted into a run",
			},
			[]string{"mode"},
		),
		LastMean: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "spotavg_last_mean",
				Help: "Most recent mean price computed",
			},
			[]string{"mode"},
		),
		AggregationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spotavg_aggregation_duration_seconds",
				Help:    "Duration of sampling runs",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		AccumulatorSamples: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "spotavg_accumulator_samples",
				Help: "Samples held by the distributed accumulator",
			},
		),
		AccumulatorCompleted: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "spotavg_accumulator_completed",
				Help: "Producers that have contributed to the distributed accumulator",
			},
		),
		ProducerExitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spotavg_producer_exits_total",
				Help: "Producer terminations by reason",
			},
			[]string{"reason"},
		),
	}

	m.registry.MustRegister(
		m.FetchTotal,
		m.FetchDuration,
		m.SamplesTotal,
		m.LastMean,
		m.AggregationDuration,
		m.AccumulatorSamples,
		m.AccumulatorCompleted,
		m.ProducerExitsTotal,
	)

	return m
}

// Registry exposes the underlying registry as a Gatherer.
func (m *Metrics) Registry() prometheus.Gatherer {
	return m.registry
}

// Serve exposes /metrics on addr until ctx is canceled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// WriteTextfile dumps all metrics in the text exposition format, suitable for
// the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// RecordFetch records one price request.
func (m *Metrics) RecordFetch(source string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.FetchTotal.WithLabelValues(source, outcome).Inc()
	m.FetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordSample records a sample accepted into a run.
func (m *Metrics) RecordSample(mode string) {
	if m == nil {
		return
	}
	m.SamplesTotal.WithLabelValues(mode).Inc()
}

// RecordAggregation records a finished run and its mean.
func (m *Metrics) RecordAggregation(method string, mean float64, duration time.Duration) {
	if m == nil {
		return
	}
	m.LastMean.WithLabelValues(method).Set(mean)
	m.AggregationDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordAccumulator records the accumulator state after an update.
func (m *Metrics) RecordAccumulator(samples, completed int) {
	if m == nil {
		return
	}
	m.AccumulatorSamples.Set(float64(samples))
	m.AccumulatorCompleted.Set(float64(completed))
}

// RecordProducerExit records why a producer stopped.
func (m *Metrics) RecordProducerExit(reason string) {
	if m == nil {
		return
	}
	m.ProducerExitsTotal.WithLabelValues(reason).Inc()
}
