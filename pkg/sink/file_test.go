package sink

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const s1Content = "Average Price: 10000\nData Points: [10000.0, 10002.0, 9998.0]"

func TestFileSink_RoundTrip(t *testing.T) {
	contents := []string{
		s1Content,
		"",
		"unicode ₿ price\n",
		"trailing newline\n\n",
	}

	for _, content := range contents {
		s := NewFileSink(afero.NewMemMapFs())
		require.NoError(t, s.Write("cache_results.txt", content))

		got, err := s.Read("cache_results.txt")
		require.NoError(t, err)
		assert.Equal(t, content, got)
	}
}

func TestFileSink_Truncates(t *testing.T) {
	s := NewFileSink(afero.NewMemMapFs())
	require.NoError(t, s.Write("f.txt", "a much longer first version"))
	require.NoError(t, s.Write("f.txt", "short"))

	got, err := s.Read("f.txt")
	require.NoError(t, err)
	assert.Equal(t, "short", got)
}

func TestFileSink_ReadMissing(t *testing.T) {
	s := NewFileSink(afero.NewMemMapFs())
	_, err := s.Read("absent.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileSink_WriteFailure(t *testing.T) {
	s := NewFileSink(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	err := s.Write("cache_results.txt", "x")
	assert.ErrorIs(t, err, ErrWrite)
}

func TestFileSink_OsFs(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSink(nil)
	path := dir + "/cache_results.txt"

	require.NoError(t, s.Write(path, s1Content))
	got, err := s.Read(path)
	require.NoError(t, err)
	assert.Equal(t, s1Content, got)
}

func TestReader_Dump(t *testing.T) {
	s := NewFileSink(afero.NewMemMapFs())
	require.NoError(t, s.Write("cache_results.txt", s1Content))

	var out bytes.Buffer
	require.NoError(t, NewReader(s).Dump("cache_results.txt", &out))
	assert.Equal(t, s1Content, out.String())
}

func TestReader_DumpMissing(t *testing.T) {
	var out bytes.Buffer
	err := NewReader(NewFileSink(afero.NewMemMapFs())).Dump("cache_results.txt", &out)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, out.String())
}
