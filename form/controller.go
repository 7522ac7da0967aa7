package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	goform "github.com/reoring/goform"
)

var (
	// ErrSubmitting is returned by Submit while a previous submit is in flight.
	ErrSubmitting = errors.New("form: submit already in progress")
	// ErrNotDirty is returned by Submit when no field differs from the initial values.
	ErrNotDirty = errors.New("form: nothing changed")
)

// SubmitFunc receives the coerced, validated record.
type SubmitFunc func(ctx context.Context, values goform.Record) error

// Controller owns the values of one form and drives validation and submit.
//
// All methods are safe for concurrent use. The submit handler runs without
// the internal lock held, so calls made while it runs observe Submitting().
type Controller struct {
	mu          sync.Mutex
	schema      goform.Schema
	initial     goform.Record
	values      goform.Record
	dirty       bool
	submitting  bool
	state       State
	last        Outcome
	errors      goform.Issues
	submitCount int

	registry  *Registry
	mode      goform.ValidateMode
	log       zerolog.Logger
	observer  Observer
	onInvalid func(goform.Issues)
	newID     func() string

	// transitions queued under mu, reported to observer after unlocking
	pending []transition
}

type transition struct{ from, to State }

// New creates a controller seeded with initial. The initial values are the
// snapshot against which Dirty is computed.
func New(schema goform.Schema, initial goform.Record, opts ...Option) *Controller {
	c := &Controller{
		schema:   schema,
		initial:  initial.Clone(),
		values:   initial.Clone(),
		registry: NewRegistry(),
		log:      zerolog.Nop(),
		observer: NopObserver{},
		newID:    defaultID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the handle registry that field components register with.
func (c *Controller) Registry() *Registry { return c.registry }

// Schema returns the schema the controller validates against.
func (c *Controller) Schema() goform.Schema { return c.schema }

// Values returns a copy of the current values.
func (c *Controller) Values() goform.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.Clone()
}

// Value returns the current value of one field.
func (c *Controller) Value(name string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[name]
}

// Dirty reports whether any field differs from the initial snapshot.
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Submitting reports whether a submit cycle is in progress.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// State returns the current phase. Outside a submit cycle it is StateIdle.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastOutcome returns how the most recent submit attempt that passed the guard ended.
func (c *Controller) LastOutcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// SubmitCount returns the number of submit attempts that passed the guard.
func (c *Controller) SubmitCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitCount
}

// Errors returns the stored issues in field declaration order.
func (c *Controller) Errors() goform.Issues {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append(goform.Issues(nil), c.errors...)
}

// Error returns the stored message for name, or "".
func (c *Controller) Error(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if it, ok := c.errors.For(name); ok {
		return it.Message
	}
	return ""
}

// SetField updates one field and recomputes Dirty. With ValidateOnChange the
// field is revalidated and its stored error replaced.
func (c *Controller) SetField(name string, value any) error {
	if !c.schema.Has(name) {
		return fmt.Errorf("%w: %q", goform.ErrUnknownField, name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = value
	c.dirty = !goform.Equal(c.values, c.initial)
	if c.mode == goform.ValidateOnChange {
		c.revalidateLocked(name)
	}
	return nil
}

// Blur signals that field name lost focus. With ValidateOnBlur the field is revalidated.
func (c *Controller) Blur(name string) {
	if !c.schema.Has(name) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == goform.ValidateOnBlur {
		c.revalidateLocked(name)
	}
}

// SetValues overwrites the given fields directly, bypassing change
// validation, and recomputes Dirty. Unknown names abort without applying anything.
func (c *Controller) SetValues(partial goform.Record) error {
	for name := range partial {
		if !c.schema.Has(name) {
			return fmt.Errorf("%w: %q", goform.ErrUnknownField, name)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, v := range partial {
		c.values[name] = v
	}
	c.dirty = !goform.Equal(c.values, c.initial)
	return nil
}

// Reset restores the initial values and clears stored errors.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrSubmitting
	}
	c.values = c.initial.Clone()
	c.dirty = false
	c.errors = nil
	c.state = StateIdle
	return nil
}

// Submit validates the current values and, when they pass, calls handler
// with the coerced record.
//
// The call is a no-op returning OutcomeSkipped while another submit is in
// progress (ErrSubmitting) or when nothing changed (ErrNotDirty). On
// validation failure the issues are stored, focus is routed to the first
// errored field and the issues are returned as the error. Submitting is
// reset when the handler returns or panics.
func (c *Controller) Submit(ctx context.Context, handler SubmitFunc) (Outcome, error) {
	c.mu.Lock()
	if err := c.guardLocked(); err != nil {
		c.mu.Unlock()
		c.log.Debug().Err(err).Msg("submit rejected")
		c.observer.SubmitRejected(err)
		return OutcomeSkipped, err
	}
	id := c.newID()
	start := time.Now()
	c.submitting = true
	c.submitCount++
	c.transitionLocked(StateValidating)
	values := c.values.Clone()
	c.unlockAndNotify(id)

	log := c.log.With().Str("submit_id", id).Logger()
	log.Debug().Msg("submit started")

	parsed, err := c.schema.Parse(ctx, values)
	if err != nil {
		iss, ok := goform.AsIssues(err)
		if !ok {
			iss = goform.Issues{goform.Root().Issue(goform.CodeCustom, err.Error())}
		}
		c.observer.Validated(id, iss)
		c.mu.Lock()
		c.submitting = false
		c.errors = iss
		c.last = OutcomeInvalid
		c.transitionLocked(StateFailed)
		c.transitionLocked(StateIdle)
		c.unlockAndNotify(id)

		log.Info().Int("issues", len(iss)).Strs("fields", iss.Fields()).Msg("validation failed")
		c.routeErrors(iss, log)
		c.observer.SubmitDone(id, OutcomeInvalid, time.Since(start))
		return OutcomeInvalid, iss
	}
	c.observer.Validated(id, nil)

	c.mu.Lock()
	c.errors = nil
	c.transitionLocked(StateSubmitting)
	c.unlockAndNotify(id)

	// runs on return and while a handler panic unwinds
	outcome, returned := OutcomeFailed, false
	defer func() {
		elapsed := time.Since(start)
		switch {
		case !returned:
			log.Error().Dur("elapsed", elapsed).Msg("submit handler panicked")
		case err != nil:
			log.Warn().Err(err).Dur("elapsed", elapsed).Msg("submit handler failed")
		default:
			log.Info().Dur("elapsed", elapsed).Msg("submit succeeded")
		}
		c.observer.SubmitDone(id, outcome, elapsed)
	}()
	outcome, err = c.runHandler(ctx, id, handler, parsed)
	returned = true
	return outcome, err
}

func (c *Controller) guardLocked() error {
	if c.submitting {
		return ErrSubmitting
	}
	if !c.dirty {
		return ErrNotDirty
	}
	return nil
}

// runHandler resets the submitting flag however the handler exits. A panic
// is re-raised after the reset.
func (c *Controller) runHandler(ctx context.Context, id string, handler SubmitFunc, values goform.Record) (outcome Outcome, err error) {
	panicked := true
	defer func() {
		outcome = OutcomeSucceeded
		if err != nil || panicked {
			outcome = OutcomeFailed
		}
		c.mu.Lock()
		c.submitting = false
		c.last = outcome
		if outcome == OutcomeSucceeded {
			c.transitionLocked(StateSucceeded)
		} else {
			c.transitionLocked(StateFailed)
		}
		c.transitionLocked(StateIdle)
		c.unlockAndNotify(id)
	}()
	if handler != nil {
		if herr := handler(ctx, values); herr != nil {
			err = fmt.Errorf("form: submit handler: %w", herr)
		}
	}
	panicked = false
	return outcome, err
}

func (c *Controller) transitionLocked(to State) {
	c.pending = append(c.pending, transition{from: c.state, to: to})
	c.state = to
}

// unlockAndNotify releases mu, then reports the queued transitions so that
// a slow observer never blocks the accessors.
func (c *Controller) unlockAndNotify(id string) {
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, tr := range pending {
		c.observer.StateChanged(id, tr.from, tr.to)
	}
}

// routeErrors focuses the input of the first errored field. Fields without a
// registered handle (pickers, date controls) are skipped silently.
func (c *Controller) routeErrors(iss goform.Issues, log zerolog.Logger) {
	if c.onInvalid != nil {
		c.onInvalid(iss)
		return
	}
	if len(iss) == 0 {
		return
	}
	first := iss[0].Field()
	h, ok := c.registry.Lookup(first)
	if !ok {
		log.Debug().Str("field", first).Msg("no focus handle registered")
		return
	}
	log.Debug().Str("field", first).Msg("focusing first errored field")
	h.Focus()
}

// revalidateLocked replaces the stored error of one field, keeping the
// declaration order of the remaining issues.
func (c *Controller) revalidateLocked(name string) {
	it, bad := c.schema.ValidateField(context.Background(), c.values, name)
	byField := make(map[string]goform.Issue, len(c.errors)+1)
	for _, e := range c.errors {
		byField[e.Field()] = e
	}
	if bad {
		byField[name] = it
	} else {
		delete(byField, name)
	}
	var out goform.Issues
	for _, f := range c.schema.Fields() {
		if e, ok := byField[f]; ok {
			out = append(out, e)
		}
	}
	c.errors = out
}
