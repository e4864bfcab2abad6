package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/StrathCole/spotavg/pkg/config"
	"github.com/StrathCole/spotavg/pkg/logging"
	"github.com/StrathCole/spotavg/pkg/metrics"
)

const (
	coinbaseName    = "coinbase"
	coinbaseTimeout = 10 * time.Second
	maxBodyBytes    = 1 << 20
)

// coinbaseResponse is the body of GET /v2/prices/spot
type coinbaseResponse struct {
	Data *struct {
		Amount   json.RawMessage `json:"amount"`
		Base     string          `json:"base"`
		Currency string          `json:"currency"`
	} `json:"data"`
}

// CoinbaseSource fetches the BTC spot price from the Coinbase REST API
type CoinbaseSource struct {
	url       string
	userAgent string
	client    *http.Client
	logger    *logging.Logger
	metrics   *metrics.Metrics
}

// NewCoinbaseSource creates a new Coinbase spot price source
func NewCoinbaseSource(cfg config.SourceConfig, logger *logging.Logger, m *metrics.Metrics) (*CoinbaseSource, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w", config.ErrSourceURLRequired)
	}
	if logger == nil {
		logger = logging.NewNoopLogger()
	}

	timeout := cfg.Timeout.ToDuration()
	if timeout <= 0 {
		timeout = coinbaseTimeout
	}

	return &CoinbaseSource{
		url:       cfg.URL,
		userAgent: cfg.UserAgent,
		client: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}, nil
}

// Name returns the source name
func (s *CoinbaseSource) Name() string {
	return coinbaseName
}

// Fetch performs one GET against the spot endpoint. No retries.
func (s *CoinbaseSource) Fetch(ctx context.Context) (Sample, error) {
	start := time.Now()
	sample, err := s.fetch(ctx)
	s.metrics.RecordFetch(s.Name(), err, time.Since(start))
	if err != nil {
		s.logger.Debug("Spot price request failed", "url", s.url, "kind", Kind(err), "error", err)
		return Sample{}, err
	}
	s.logger.Debug("Fetched spot price", "amount", sample.Amount, "duration", time.Since(start))
	return sample, nil
}

func (s *CoinbaseSource) fetch(ctx context.Context) (Sample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Sample{}, fmt.Errorf("%w: failed to read body: %w", ErrTransport, err)
	}

	if resp.StatusCode/100 != 2 {
		return Sample{}, fmt.Errorf("%w: %w: %d", ErrTransport, ErrUnexpectedStatus, resp.StatusCode)
	}

	return parseSpot(body, time.Now())
}

// parseSpot extracts data.amount (plus base and currency when present).
func parseSpot(body []byte, at time.Time) (Sample, error) {
	var parsed coinbaseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Sample{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if parsed.Data == nil {
		return Sample{}, fmt.Errorf("%w: data", ErrMissingField)
	}
	if len(parsed.Data.Amount) == 0 || string(parsed.Data.Amount) == "null" {
		return Sample{}, fmt.Errorf("%w: data.amount", ErrMissingField)
	}

	var amount string
	if err := json.Unmarshal(parsed.Data.Amount, &amount); err != nil {
		return Sample{}, fmt.Errorf("%w: data.amount is not a string: %s", ErrFormat, parsed.Data.Amount)
	}

	value, err := parseAmount(amount)
	if err != nil {
		return Sample{}, err
	}

	return Sample{
		Value:     value,
		Amount:    amount,
		Base:      parsed.Data.Base,
		Currency:  parsed.Data.Currency,
		Timestamp: at,
	}, nil
}

// parseAmount validates a decimal string and converts it to the nearest float64.
func parseAmount(amount string) (float64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrFormat, amount, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative price %q", ErrFormat, amount)
	}

	value, err := strconv.ParseFloat(amount, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: %q is not a finite float64", ErrFormat, amount)
	}

	return value, nil
}
