package dsl

import (
	"context"

	goform "github.com/reoring/goform"
	eng "github.com/reoring/goform/internal/engine"
)

// Schema is a compiled record schema. It is immutable and safe for concurrent use.
type Schema struct {
	plan *eng.Plan
}

var _ goform.Schema = (*Schema)(nil)

// Parse returns the coerced record (numbers as float64, dates as time.Time)
// or the Issues as error.
func (s *Schema) Parse(ctx context.Context, rec goform.Record) (goform.Record, error) {
	out, iss := s.plan.Run(ctx, rec)
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Validate returns one issue per failing field, in declaration order.
func (s *Schema) Validate(ctx context.Context, rec goform.Record) goform.Issues {
	_, iss := s.plan.Run(ctx, rec)
	return iss
}

// ValidateField evaluates the rules of a single field against rec.
func (s *Schema) ValidateField(ctx context.Context, rec goform.Record, field string) (goform.Issue, bool) {
	return s.plan.RunField(ctx, rec, field)
}

// Fields lists declared field names in declaration order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.plan.Fields))
	for i, f := range s.plan.Fields {
		out[i] = f.Name
	}
	return out
}

// Has reports whether field is declared.
func (s *Schema) Has(field string) bool {
	_, ok := s.plan.Lookup(field)
	return ok
}

// Kind returns the declared kind of field.
func (s *Schema) Kind(field string) (goform.Kind, bool) {
	f, ok := s.plan.Lookup(field)
	if !ok {
		return 0, false
	}
	return f.Kind, true
}
