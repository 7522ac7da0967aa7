// Package goform provides:
//
// - Declarative record validation with ordered, field-keyed Issues (JSON Pointer, code, message)
// - Cross-field refinements attached to a target field
// - A form controller (package form) tracking dirty/submitting state and routing focus to the first error
//
// Design policy:
// - Keep only public data types in the root package; put rule evaluation under internal/.
// - Place the schema DSL under dsl/, reusable refinements under rules/, coercion under codec/,
//   and the CLI under cmd/goform.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s, err := dsl.Object().
//		Field("password", dsl.String().Min(8, "too short")).
//		Field("confirmPassword", dsl.String().Required("required")).
//		RefineWith(rules.Equal("confirmPassword", "password", "Passwords don't match")).
//		Build()
//
//	iss := s.Validate(ctx, goform.Record{"password": "secret123", "confirmPassword": "x"})
//	// iss[0].Field() == "confirmPassword"
package goform
