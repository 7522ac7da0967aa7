package form

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	goform "github.com/reoring/goform"
)

// Option configures a Controller.
type Option func(*Controller)

// WithValidateOn selects the extra validation trigger (change or blur).
// Submit always validates.
func WithValidateOn(m goform.ValidateMode) Option {
	return func(c *Controller) { c.mode = m }
}

// WithLogger sets the logger for submit lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithObserver sets the lifecycle observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithInvalidHandler replaces focus routing after a failed validation.
func WithInvalidHandler(fn func(goform.Issues)) Option {
	return func(c *Controller) { c.onInvalid = fn }
}

// WithRegistry shares an existing registry with the controller.
func WithRegistry(r *Registry) Option {
	return func(c *Controller) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithIDGenerator sets the generator for submit attempt IDs.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

func defaultID() string { return uuid.NewString() }
