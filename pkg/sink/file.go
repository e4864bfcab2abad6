package sink

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

const fileMode = 0o644

// FileSink writes and reads UTF-8 text files on a filesystem.
type FileSink struct {
	fs afero.Fs
}

// NewFileSink creates a sink on fsys. A nil fsys means the OS filesystem.
func NewFileSink(fsys afero.Fs) *FileSink {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &FileSink{fs: fsys}
}

// Fs returns the filesystem the sink operates on.
func (s *FileSink) Fs() afero.Fs {
	return s.fs
}

// Write replaces the file at path with content, creating it if needed.
func (s *FileSink) Write(path, content string) error {
	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}

	if _, err := io.WriteString(f, content); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	return nil
}

// Read loads the whole file at path as text.
func (s *FileSink) Read(path string) (string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}
	return string(data), nil
}
