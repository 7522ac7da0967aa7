package source

import (
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"

	goform "github.com/reoring/goform"
)

// JSON returns a Driver backed by goccy/go-json. Numbers are kept as
// json.Number until schema coercion.
func JSON() Driver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) Name() string { return "go-json" }

func (driverGoJSON) Decode(r io.Reader) (goform.Record, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	// a second document means trailing garbage
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json: unexpected trailing data")
	}
	return normalizeNumbers(m), nil
}

// normalizeNumbers pins number values to encoding/json.Number, the type
// codec.Number understands.
func normalizeNumbers(m map[string]any) goform.Record {
	out := make(goform.Record, len(m))
	for k, v := range m {
		if n, ok := v.(j.Number); ok {
			out[k] = stdjson.Number(string(n))
			continue
		}
		out[k] = v
	}
	return out
}
