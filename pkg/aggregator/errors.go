// Package aggregator implements distributed mode: K producers sampling into a
// shared accumulator and one consumer that finalizes the mean.
package aggregator

import "errors"

var (
	// ErrNoSource indicates that no price source was given.
	ErrNoSource = errors.New("price source is required")
	// ErrInvalidProducers indicates a producer count below one.
	ErrInvalidProducers = errors.New("producer count must be >= 1")
	// ErrInvalidTimeCap indicates a non-positive per-producer time cap.
	ErrInvalidTimeCap = errors.New("time cap must be > 0")
	// ErrUnknownContribution indicates an unknown contribution policy.
	ErrUnknownContribution = errors.New("unknown contribution policy")
)
