package form

import (
	"fmt"
	"time"

	goform "github.com/reoring/goform"
)

// State is the phase of a submit cycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateFailed
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateFailed:
		return "failed"
	case StateSucceeded:
		return "succeeded"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Outcome summarizes how a Submit call ended.
type Outcome int

const (
	OutcomeSkipped   Outcome = iota // Guard rejected the call; nothing ran.
	OutcomeInvalid                  // Validation failed; handler not called.
	OutcomeSucceeded                // Handler returned nil.
	OutcomeFailed                   // Handler returned an error or panicked.
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Observer receives submit lifecycle events. Events are delivered without
// the Controller's lock held, so implementations may read Controller state.
type Observer interface {
	StateChanged(id string, from, to State)
	Validated(id string, iss goform.Issues)
	SubmitDone(id string, outcome Outcome, elapsed time.Duration)
	SubmitRejected(err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) StateChanged(string, State, State)         {}
func (NopObserver) Validated(string, goform.Issues)           {}
func (NopObserver) SubmitDone(string, Outcome, time.Duration) {}
func (NopObserver) SubmitRejected(error)                      {}
