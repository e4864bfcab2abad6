// Package cli maps the command line onto the cache, read and distributed pipelines.
package cli

import "errors"

var (
	// ErrMissingMode indicates that --mode was not given.
	ErrMissingMode = errors.New("missing --mode")
	// ErrUnknownMode indicates an unrecognized --mode value.
	ErrUnknownMode = errors.New("invalid mode")
	// ErrMissingTimes indicates that cache mode was started without a sample count.
	ErrMissingTimes = errors.New("cache mode requires --times=N")
	// ErrInvalidTimes indicates that the sample count is not a non-negative integer.
	ErrInvalidTimes = errors.New("invalid times argument")
)
