// Package sink persists and reads back the run summary file.
package sink

import "errors"

var (
	// ErrWrite indicates that the file could not be written.
	ErrWrite = errors.New("failed to write file")
	// ErrRead indicates that the file could not be read.
	ErrRead = errors.New("failed to read file")
	// ErrNotFound indicates that the file does not exist.
	ErrNotFound = errors.New("file not found")
)
