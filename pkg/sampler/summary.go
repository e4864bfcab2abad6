package sampler

import (
	"strconv"
	"strings"
)

// Summary is the outcome of one cache-mode run.
type Summary struct {
	Mean      float64
	Samples   []float64 // arrival order
	Requested int
	Failed    int
	Divisor   int
}

// Mean returns sum(samples)/divisor, or 0 when divisor is not positive.
func Mean(samples []float64, divisor int) float64 {
	if divisor <= 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(divisor)
}

// Render produces the persisted two-line text form:
//
//	Average Price: <mean>
//	Data Points: [<p1>, <p2>, ..., <pN>]
func (s Summary) Render() string {
	var b strings.Builder
	b.WriteString("Average Price: ")
	b.WriteString(FormatMean(s.Mean))
	b.WriteString("\nData Points: [")
	for i, p := range s.Samples {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatPoint(p))
	}
	b.WriteString("]")
	return b.String()
}

// FormatMean renders v as the shortest decimal that round-trips, without exponent.
func FormatMean(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPoint renders v like FormatMean but always with a fractional part.
func FormatPoint(v float64) string {
	s := FormatMean(v)
	if strings.ContainsAny(s, ".NI") {
		return s
	}
	return s + ".0"
}
