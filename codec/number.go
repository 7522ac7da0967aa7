package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var (
	// ErrNotNumber is returned when a value cannot be coerced to a number.
	ErrNotNumber = errors.New("codec: not a number")
	// ErrMissing is returned for nil and blank date inputs.
	ErrMissing = errors.New("codec: missing value")
)

// Number coerces v into a float64.
//
// Numeric Go kinds and json.Number convert directly. When fromString is true,
// strings are trimmed and parsed; a blank string coerces to 0 the same way a
// loosely typed number input does. NaN and infinities are rejected.
func Number(v any, fromString bool) (float64, error) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, ErrNotNumber
	case json.Number:
		x, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotNumber, n.String())
		}
		f = x
	case string:
		if !fromString {
			return 0, fmt.Errorf("%w: string", ErrNotNumber)
		}
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, nil
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotNumber, n)
		}
		f = x
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f = float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			f = rv.Float()
		default:
			return 0, fmt.Errorf("%w: %T", ErrNotNumber, v)
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNotNumber, f)
	}
	return f, nil
}
