package form

import (
	"fmt"

	goform "github.com/reoring/goform"
)

// Section groups fields that share one footnote slot.
type Section struct {
	Title    string
	Fields   []string
	Footnote string // static hint shown when no field in the section has an error
}

// Footnote returns the message to show under s: the stored error of the
// first errored field in s.Fields order, else the static footnote. isError
// tells the two apart.
func (c *Controller) Footnote(s Section) (msg string, isError bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range s.Fields {
		if it, ok := c.errors.For(f); ok && it.Message != "" {
			return it.Message, true
		}
	}
	return s.Footnote, false
}

// PickFields returns names after checking each against the schema.
func PickFields(s goform.Schema, names ...string) ([]string, error) {
	for _, n := range names {
		if !s.Has(n) {
			return nil, fmt.Errorf("%w: %q", goform.ErrUnknownField, n)
		}
	}
	return append([]string(nil), names...), nil
}
