package goform

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeInvalidFormat = "invalid_format"
	// Cross-field refinements
	CodeCustom = "custom"
)

// Sentinel errors for schema construction and record access. Use errors.Is to match.
var (
	ErrUnknownField   = errors.New("goform: unknown field")
	ErrDuplicateField = errors.New("goform: duplicate field")
	ErrNoFields       = errors.New("goform: schema declares no fields")
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /confirmPassword).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"min":8, "got":5})
	// for i18n and observability.
	Params map[string]any
	// Rule optionally records the rule name that produced this issue.
	Rule string
}

// Field returns the top-level field name the issue is attached to.
func (it Issue) Field() string {
	p := strings.TrimPrefix(it.Path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return unescapeToken(p)
}

// Issues is a collection of validation errors that implements error.
// Order is the field declaration order of the schema that produced it.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /firstName
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Fields returns the field names that have issues (unique, order preserved by first occurrence).
func (iss Issues) Fields() []string {
	if len(iss) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(iss))
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		f := it.Field()
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// For returns the first issue attached to field.
func (iss Issues) For(field string) (Issue, bool) {
	for _, it := range iss {
		if it.Field() == field {
			return it, true
		}
	}
	return Issue{}, false
}

// ByField groups messages by field name.
func (iss Issues) ByField() map[string][]string {
	m := make(map[string][]string, len(iss))
	for _, it := range iss {
		f := it.Field()
		m[f] = append(m[f], it.Message)
	}
	return m
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
