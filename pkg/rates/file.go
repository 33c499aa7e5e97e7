package rates

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/openbenefits/ratesync/pkg/errors"
)

// File is the persisted benefit-rates document.
type File struct {
	TaxYear     string   `json:"tax_year"`
	LastUpdated string   `json:"last_updated"`
	Source      string   `json:"source"`
	Rates       *RateSet `json:"rates"`
}

// Load reads and decodes a rates file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	if file.Rates == nil {
		file.Rates = NewRateSet()
	}
	return &file, nil
}

// Save writes the rates file as a single atomic step: the document is
// encoded with two-space indentation and a trailing newline into a
// temporary file, then renamed over the target.
func (f *File) Save(path string) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(f); err != nil {
		return errors.WrapParse("json", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("write", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
