package source

import (
	"context"
	"time"
)

// Sample is one successfully fetched spot price.
type Sample struct {
	Value     float64   `json:"value"`
	Amount    string    `json:"amount"`
	Base      string    `json:"base,omitempty"`
	Currency  string    `json:"currency,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Source fetches a single spot price per call.
type Source interface {
	// Fetch performs exactly one request and returns the parsed price.
	Fetch(ctx context.Context) (Sample, error)

	// Name returns the unique name of this source
	Name() string
}
