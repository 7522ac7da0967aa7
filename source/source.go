// Package source decodes form records from JSON and YAML documents.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	goform "github.com/reoring/goform"
)

// ErrNotObject is returned when the document is not a single top-level object.
var ErrNotObject = errors.New("source: document is not an object")

// Driver decodes one record from a reader.
type Driver interface {
	Decode(r io.Reader) (goform.Record, error)
	Name() string
}

// ForPath selects a driver from the file extension: .yaml/.yml use YAML, everything else JSON.
func ForPath(path string) Driver {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML()
	default:
		return JSON()
	}
}

// ReadFile decodes the record stored at path.
func ReadFile(path string) (goform.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open: %w", err)
	}
	defer f.Close()
	rec, err := ForPath(path).Decode(f)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}
	return rec, nil
}

// JSONBytes decodes a JSON record from b.
func JSONBytes(b []byte) (goform.Record, error) { return JSON().Decode(bytes.NewReader(b)) }

// YAMLBytes decodes a YAML record from b.
func YAMLBytes(b []byte) (goform.Record, error) { return YAML().Decode(bytes.NewReader(b)) }
