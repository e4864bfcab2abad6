package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in        float64
		wantMean  string
		wantPoint string
	}{
		{10000, "10000", "10000.0"},
		{9998, "9998", "9998.0"},
		{175, "175", "175.0"},
		{0, "0", "0.0"},
		{10000.5, "10000.5", "10000.5"},
		{0.1, "0.1", "0.1"},
		{67012.35, "67012.35", "67012.35"},
		{1e21, "1000000000000000000000", "1000000000000000000000.0"},
		{math.Inf(1), "+Inf", "+Inf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.wantMean, FormatMean(tt.in))
		assert.Equal(t, tt.wantPoint, FormatPoint(tt.in))
	}
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil, 0))
	assert.Equal(t, 0.0, Mean([]float64{1, 2}, 0))
	assert.Equal(t, 175.0, Mean([]float64{100, 200, 400}, 4))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}, 3))
}

func TestSummary_Render(t *testing.T) {
	s := Summary{Mean: 10000, Samples: []float64{10000, 10002, 9998}}
	assert.Equal(t, "Average Price: 10000\nData Points: [10000.0, 10002.0, 9998.0]", s.Render())

	assert.Equal(t, "Average Price: 0\nData Points: []", Summary{}.Render())
}
