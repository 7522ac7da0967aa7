// Package form implements a form controller over a goform.Schema.
//
// A Controller holds the in-progress record, tracks Dirty against the initial
// snapshot and brackets a submit cycle with Submitting:
//
//	Idle -> Validating -> Failed -> Idle        (issues found, focus routed)
//	Idle -> Validating -> Submitting -> Succeeded|Failed -> Idle
//
// Submit is rejected (OutcomeSkipped) while another submit runs or when the
// form is not dirty. There is no timeout: a handler that never returns keeps
// the controller in Submitting.
//
// Field components get a Binding from Field and register a Focuser with the
// controller's Registry (or Mount) so that, after a failed validation, the
// first errored field in declaration order receives focus.
package form
