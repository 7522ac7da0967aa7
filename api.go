package goform

import "context"

// Schema validates and coerces form records.
type Schema interface {
	// Parse coerces rec into the declared field kinds and validates it.
	// It returns Issues as the error when validation fails.
	Parse(ctx context.Context, rec Record) (Record, error)

	// Validate runs every rule against rec and returns the failures in field
	// declaration order. An empty result means rec is submittable.
	Validate(ctx context.Context, rec Record) Issues

	// ValidateField runs only the rules attached to field.
	ValidateField(ctx context.Context, rec Record, field string) (Issue, bool)

	// Fields lists the declared field names in declaration order.
	Fields() []string

	// Has reports whether field is declared.
	Has(field string) bool
}

// SafeParse parses rec, returning (nil, false) on validation error.
func SafeParse(ctx context.Context, s Schema, rec Record) (Record, bool) {
	out, err := s.Parse(ctx, rec)
	if err != nil {
		return nil, false
	}
	return out, true
}

// Is returns true if rec conforms to the schema s.
func Is(ctx context.Context, s Schema, rec Record) bool {
	return len(s.Validate(ctx, rec)) == 0
}

// ---- Validation-time context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that stops validation at the first
// failing field.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current validation should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
