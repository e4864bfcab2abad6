package export

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	at := time.UnixMilli(1_700_000_000_000)
	return Records(
		[]float64{10000, 10002, 9998},
		[]time.Time{at, at.Add(time.Second)},
	)
}

func TestRecords(t *testing.T) {
	records := sampleRecords()
	require.Len(t, records, 3)
	assert.Equal(t, Record{Index: 0, Price: 10000, Timestamp: 1_700_000_000_000}, records[0])
	assert.Equal(t, int64(1_700_000_001_000), records[1].Timestamp)
	assert.Zero(t, records[2].Timestamp)
}

func TestNew(t *testing.T) {
	fsys := afero.NewMemMapFs()

	e, err := New("JSON", fsys)
	require.NoError(t, err)
	assert.Equal(t, "json", e.Extension())

	e, err = New("parquet", fsys)
	require.NoError(t, err)
	assert.Equal(t, "parquet", e.Extension())

	_, err = New("csv", fsys)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestJSONExporter(t *testing.T) {
	fsys := afero.NewMemMapFs()
	e, err := New("json", fsys)
	require.NoError(t, err)
	require.NoError(t, e.Export(sampleRecords(), "samples.json"))

	data, err := afero.ReadFile(fsys, "samples.json")
	require.NoError(t, err)

	var got []Record
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sampleRecords(), got)
}

func TestParquetExporter(t *testing.T) {
	fsys := afero.NewMemMapFs()
	e, err := New("parquet", fsys)
	require.NoError(t, err)
	require.NoError(t, e.Export(sampleRecords(), "samples.parquet"))

	f, err := fsys.Open("samples.parquet")
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)

	got, err := parquet.Read[Record](f, info.Size())
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)
}
