package dsl

import (
	"fmt"

	goform "github.com/reoring/goform"
	eng "github.com/reoring/goform/internal/engine"
	"github.com/reoring/goform/rules"
)

type fieldDecl struct {
	name string
	spec FieldSpec
}

// ObjectBuilder collects field declarations and cross-field refinements.
type ObjectBuilder struct {
	fields  []fieldDecl
	refines []rules.Rule
}

// Object creates a new record schema builder.
func Object() *ObjectBuilder { return &ObjectBuilder{} }

// Field declares a field. Declaration order is the order of validation results.
func (b *ObjectBuilder) Field(name string, spec FieldSpec) *ObjectBuilder {
	b.fields = append(b.fields, fieldDecl{name: name, spec: spec})
	return b
}

// Refine declares a cross-field rule whose failure is reported on target.
// refs names the other fields pred reads so that Build can check them.
func (b *ObjectBuilder) Refine(target, msg string, pred func(goform.Record) bool, refs ...string) *ObjectBuilder {
	return b.RefineWith(rules.Rule{Name: "refine", Target: target, Message: msg, Pred: pred, Refs: refs})
}

// RefineWith declares prebuilt cross-field rules (see package rules).
func (b *ObjectBuilder) RefineWith(rs ...rules.Rule) *ObjectBuilder {
	b.refines = append(b.refines, rs...)
	return b
}

// Build compiles the declarations. Every field a refinement targets or reads
// must be declared.
func (b *ObjectBuilder) Build() (*Schema, error) {
	if len(b.fields) == 0 {
		return nil, goform.ErrNoFields
	}
	fields := make([]eng.Field, 0, len(b.fields))
	seen := make(map[string]int, len(b.fields))
	for _, fd := range b.fields {
		if fd.name == "" {
			return nil, fmt.Errorf("%w: empty name", goform.ErrUnknownField)
		}
		if _, dup := seen[fd.name]; dup {
			return nil, fmt.Errorf("%w: %q", goform.ErrDuplicateField, fd.name)
		}
		if fd.spec == nil {
			return nil, fmt.Errorf("dsl: field %q has no spec", fd.name)
		}
		seen[fd.name] = len(fields)
		fields = append(fields, fd.spec.compile(fd.name))
	}
	for _, r := range b.refines {
		i, ok := seen[r.Target]
		if !ok {
			return nil, fmt.Errorf("%w: refinement %q targets %q", goform.ErrUnknownField, r.Name, r.Target)
		}
		for _, ref := range r.Refs {
			if _, ok := seen[ref]; !ok {
				return nil, fmt.Errorf("%w: refinement %q reads %q", goform.ErrUnknownField, r.Name, ref)
			}
		}
		fields[i].Cross = append(fields[i].Cross, eng.Rule{
			Kind:    eng.RuleCross,
			Name:    r.Name,
			Message: r.Message,
			Pred:    r.Pred,
		})
	}
	return &Schema{plan: eng.NewPlan(fields)}, nil
}

// MustBuild is like Build but panics on error. Intended for package-level schemas.
func (b *ObjectBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
