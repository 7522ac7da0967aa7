package codec

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotDate is returned when a value cannot be read as a date.
var ErrNotDate = errors.New("codec: not a date")

// dateOnly is accepted for inputs coming from date pickers and fixtures.
const dateOnly = "2006-01-02"

// Date converts v into a time.Time. Accepted inputs are time.Time, *time.Time,
// RFC3339/RFC3339Nano strings and YYYY-MM-DD strings (midnight UTC).
// A nil value or blank string returns ErrMissing.
func Date(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, ErrMissing
	case time.Time:
		if t.IsZero() {
			return time.Time{}, ErrMissing
		}
		return t, nil
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, ErrMissing
		}
		return *t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, ErrMissing
		}
		return parseRFC3339(s)
	}
	return time.Time{}, fmt.Errorf("%w: %T", ErrNotDate, v)
}

// FormatDate renders t in canonical RFC3339 (UTC, trailing zeros trimmed).
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
		return t2, nil
	}
	if t3, err3 := time.Parse(dateOnly, s); err3 == nil {
		return t3, nil
	}
	return time.Time{}, fmt.Errorf("%w: %v", ErrNotDate, err)
}
