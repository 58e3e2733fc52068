package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOptions controls how resources are read into a Dataset.
type LoadOptions struct {
	// Delimiter for CSV. If 0, picked from the file extension (',' or '\t').
	Delimiter rune
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int
	// Sheet selects an XLSX worksheet by name (case-insensitive). When empty,
	// SheetIndex (1-based, default 1) is used.
	Sheet      string
	SheetIndex int
}

// Loader reads one resource format into a Dataset.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, opt LoadOptions) (*Dataset, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrUnsupported indicates a resource format has no loader.
var ErrUnsupported = errors.New("unsupported resource format")

// ErrNoHeader indicates a tabular file without a header row.
var ErrNoHeader = errors.New("missing header row")

// LoadFile selects a loader by filename and reads the resource.
func LoadFile(path string, opt LoadOptions) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat resource: %w", err)
	}
	for _, l := range registry {
		if l.CanLoad(path) {
			ds, err := l.Load(path, opt)
			if err != nil {
				return nil, err
			}
			if ds.Name == "" {
				ds.Name = filepath.Base(path)
			}
			return ds, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, strings.ToLower(filepath.Ext(path)))
}

func init() {
	Register(csvLoader{})
	Register(geoJSONLoader{})
	Register(jsonRowsLoader{})
	Register(xlsxLoader{})
}

func truncatedWarning(read, total int) string {
	return fmt.Sprintf("loaded only %d/%d rows due to MaxRows", read, total)
}
