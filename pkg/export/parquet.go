package export

import (
	"github.com/parquet-go/parquet-go"
	"github.com/spf13/afero"
)

// ParquetExporter writes records as a single parquet file.
type ParquetExporter struct {
	fs afero.Fs
}

func (ParquetExporter) Extension() string { return "parquet" }

func (e ParquetExporter) Export(records []Record, path string) error {
	f, err := e.fs.Create(path)
	if err != nil {
		return err
	}
	if err := parquet.Write(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
