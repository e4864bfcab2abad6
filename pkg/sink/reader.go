package sink

import (
	"fmt"
	"io"
)

// Reader emits a persisted file verbatim. It does not parse the contents.
type Reader struct {
	sink *FileSink
}

// NewReader creates a reader over the files written by sink.
func NewReader(sink *FileSink) *Reader {
	return &Reader{sink: sink}
}

// Dump copies the file at path to w unchanged.
func (r *Reader) Dump(path string, w io.Writer) error {
	content, err := r.sink.Read(path)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("failed to write contents of %s: %w", path, err)
	}
	return nil
}
