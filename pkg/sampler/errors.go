// Package sampler implements cache mode: sequential sampling, averaging and persistence.
package sampler

import "errors"

var (
	// ErrNegativeCount indicates a negative sample count.
	ErrNegativeCount = errors.New("sample count must be >= 0")
	// ErrUnknownDivisor indicates an unknown divisor policy.
	ErrUnknownDivisor = errors.New("unknown divisor policy")
)
