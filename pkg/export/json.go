package export

import (
	"encoding/json"

	"github.com/spf13/afero"
)

// JSONExporter writes records as an indented JSON array.
type JSONExporter struct {
	fs afero.Fs
}

func (JSONExporter) Extension() string { return "json" }

func (e JSONExporter) Export(records []Record, path string) error {
	f, err := e.fs.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
