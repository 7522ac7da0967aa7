package dsl

import (
	goform "github.com/reoring/goform"
	eng "github.com/reoring/goform/internal/engine"
)

// FieldSpec describes one field: its kind and its ordered single-field rules.
// Obtain one from String(), Number() or Date().
type FieldSpec interface {
	compile(name string) eng.Field
}

// ---- string ----

// StringBuilder declares rules for a text field. Rules run in the order they are added.
type StringBuilder struct {
	rules []eng.Rule
}

// String returns a builder for a text field.
func String() *StringBuilder { return &StringBuilder{} }

// Required fails on the empty string.
func (b *StringBuilder) Required(msg string) *StringBuilder {
	b.rules = append(b.rules, eng.Rule{Kind: eng.RuleRequired, Name: "required", Message: msg})
	return b
}

// Min fails when the text has fewer than n characters.
func (b *StringBuilder) Min(n int, msg string) *StringBuilder {
	b.rules = append(b.rules, eng.Rule{Kind: eng.RuleMinLength, Name: "min", Length: n, Message: msg})
	return b
}

// Max fails when the text has more than n characters.
func (b *StringBuilder) Max(n int, msg string) *StringBuilder {
	b.rules = append(b.rules, eng.Rule{Kind: eng.RuleMaxLength, Name: "max", Length: n, Message: msg})
	return b
}

// Email fails unless the text looks like an email address.
func (b *StringBuilder) Email(msg string) *StringBuilder {
	b.rules = append(b.rules, eng.Rule{Kind: eng.RuleEmail, Name: "email", Message: msg})
	return b
}

func (b *StringBuilder) compile(name string) eng.Field {
	return eng.Field{Name: name, Kind: goform.KindString, Rules: append([]eng.Rule(nil), b.rules...)}
}

// ---- number ----

// NumberBuilder declares rules for a numeric field.
type NumberBuilder struct {
	coerce  bool
	typeMsg string
	rules   []eng.Rule
}

// Number returns a builder for a numeric field. Without Coerce, strings are a type error.
func Number() *NumberBuilder { return &NumberBuilder{} }

// Coerce accepts numeric strings. msg is reported when the input cannot be
// read as a number; that check runs before every range rule.
func (b *NumberBuilder) Coerce(msg string) *NumberBuilder {
	b.coerce = true
	b.typeMsg = msg
	return b
}

// TypeMessage sets the message for non-numeric input without enabling string coercion.
func (b *NumberBuilder) TypeMessage(msg string) *NumberBuilder {
	b.typeMsg = msg
	return b
}

// Min fails when the value is below x (inclusive bound).
func (b *NumberBuilder) Min(x float64, msg string) *NumberBuilder {
	b.rules = append(b.rules, eng.Rule{Kind: eng.RuleMin, Name: "min", Bound: x, Message: msg})
	return b
}

// Max fails when the value is above x (inclusive bound).
func (b *NumberBuilder) Max(x float64, msg string) *NumberBuilder {
	b.rules = append(b.rules, eng.Rule{Kind: eng.RuleMax, Name: "max", Bound: x, Message: msg})
	return b
}

func (b *NumberBuilder) compile(name string) eng.Field {
	return eng.Field{
		Name:         name,
		Kind:         goform.KindNumber,
		CoerceString: b.coerce,
		TypeMessage:  b.typeMsg,
		Rules:        append([]eng.Rule(nil), b.rules...),
	}
}

// ---- date ----

// DateBuilder declares a date field. Range checks relative to "now" are
// cross-field concerns; see package rules.
type DateBuilder struct {
	requiredMsg string
	typeMsg     string
}

// Date returns a builder for a date field. A missing value is always reported.
func Date() *DateBuilder { return &DateBuilder{} }

// Required sets the message for a missing date.
func (b *DateBuilder) Required(msg string) *DateBuilder {
	b.requiredMsg = msg
	return b
}

// TypeMessage sets the message for values that are not dates.
func (b *DateBuilder) TypeMessage(msg string) *DateBuilder {
	b.typeMsg = msg
	return b
}

func (b *DateBuilder) compile(name string) eng.Field {
	return eng.Field{Name: name, Kind: goform.KindDate, RequiredMessage: b.requiredMsg, TypeMessage: b.typeMsg}
}
