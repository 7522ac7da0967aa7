package codec

import (
	"errors"
	"fmt"
)

// ErrNotText is returned when a value is not a string.
var ErrNotText = errors.New("codec: not a string")

// Text returns v as a string. nil reads as the empty string so that
// required-style rules report it rather than a type error.
func Text(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case *string:
		if s == nil {
			return "", nil
		}
		return *s, nil
	}
	return "", fmt.Errorf("%w: %T", ErrNotText, v)
}

// IsMissing reports whether err marks an absent value.
func IsMissing(err error) bool { return errors.Is(err, ErrMissing) }
