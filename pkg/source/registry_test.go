package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StrathCole/spotavg/pkg/config"
)

func TestNew(t *testing.T) {
	t.Run("default name", func(t *testing.T) {
		src, err := New(config.SourceConfig{URL: "http://localhost/spot"}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "coinbase", src.Name())
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := New(config.SourceConfig{Name: "kraken", URL: "http://localhost/spot"}, nil, nil)
		assert.ErrorIs(t, err, ErrUnknownSource)
	})

	t.Run("missing url", func(t *testing.T) {
		_, err := New(config.SourceConfig{Name: "coinbase"}, nil, nil)
		assert.ErrorIs(t, err, config.ErrSourceURLRequired)
	})
}

func TestList(t *testing.T) {
	assert.Equal(t, []string{"coinbase"}, List())
}
