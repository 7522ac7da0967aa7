package form

import (
	"fmt"

	goform "github.com/reoring/goform"
)

// Binding is the per-field view handed to an input component.
type Binding struct {
	Name     string
	Value    any
	Error    string // "" when the field has no stored issue
	Disabled bool   // true while a submit is in flight
	OnChange func(value any) error
	OnBlur   func()
}

// Field returns the binding for name.
func (c *Controller) Field(name string) (Binding, error) {
	if !c.schema.Has(name) {
		return Binding{}, fmt.Errorf("%w: %q", goform.ErrUnknownField, name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	b := Binding{
		Name:     name,
		Value:    c.values[name],
		Disabled: c.submitting,
		OnChange: func(v any) error { return c.SetField(name, v) },
		OnBlur:   func() { c.Blur(name) },
	}
	if it, ok := c.errors.For(name); ok {
		b.Error = it.Message
	}
	return b, nil
}

// Mount registers f as the focus handle of name and returns the unmount function.
// It is shorthand for c.Registry().Register.
func (c *Controller) Mount(name string, f Focuser) (unmount func(), err error) {
	if !c.schema.Has(name) {
		return nil, fmt.Errorf("%w: %q", goform.ErrUnknownField, name)
	}
	return c.registry.Register(name, f), nil
}
