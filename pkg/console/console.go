// Package console writes the user-facing result lines of a run.
// Diagnostics go through pkg/logging instead.
package console

import (
	"fmt"
	"io"
	"sync"
)

// Printer serializes whole lines onto one writer so that concurrent
// producers never interleave partial output.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPrinter creates a Printer writing to out. A nil out discards output.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = io.Discard
	}
	return &Printer{out: out}
}

// Printf formats one line and appends a newline.
func (p *Printer) Printf(format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Write writes raw bytes, unchanged.
func (p *Printer) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.Write(b)
}
