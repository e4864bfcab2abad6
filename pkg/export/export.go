// Package export writes the sample log of a run in a machine-readable format.
package export

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// ErrUnsupportedFormat indicates an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Record is one sample of a run, in arrival order.
type Record struct {
	Index     int     `json:"index" parquet:"index"`
	Price     float64 `json:"price" parquet:"price"`
	Timestamp int64   `json:"t" parquet:"t"` // unix milliseconds
}

// Exporter writes records to a path.
type Exporter interface {
	Export(records []Record, path string) error
	Extension() string
}

// New creates an Exporter by format (json, parquet) on fsys.
func New(format string, fsys afero.Fs) (Exporter, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONExporter{fs: fsys}, nil
	case "parquet":
		return ParquetExporter{fs: fsys}, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Records converts prices and their arrival times into records.
// times may be shorter than prices; missing times are left zero.
func Records(prices []float64, times []time.Time) []Record {
	records := make([]Record, len(prices))
	for i, p := range prices {
		records[i] = Record{Index: i, Price: p}
		if i < len(times) && !times[i].IsZero() {
			records[i].Timestamp = times[i].UnixMilli()
		}
	}
	return records
}
