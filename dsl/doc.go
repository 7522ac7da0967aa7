// Package dsl provides the schema DSL for goform records.
//
// Overview
//   - Builder API: declare fields in order with Object().Field(name, spec) and finish with Build()/MustBuild().
//   - Field specs: String() (Required/Min/Max/Email), Number() (Coerce/Min/Max), Date() (Required).
//   - Refinements: Refine(target, msg, pred, refs...) or RefineWith(rules.Equal(...), rules.InPast(...)) attach
//     cross-field rules to a target field.
//
// Evaluation order
//   - All fields are coerced first; a coercion failure is the field's only issue.
//   - Then, per field in declaration order: single-field rules, then refinements targeting it.
//   - The first failing rule of a field wins; later rules for that field are skipped.
//   - Validate therefore returns at most one Issue per field, in declaration order.
//
// Build errors
//   - goform.ErrNoFields, goform.ErrDuplicateField, and goform.ErrUnknownField for refinements
//     that target an undeclared field.
//
// Example
//
//	s := dsl.Object().
//		Field("email", dsl.String().Email("Invalid email address.")).
//		Field("password", dsl.String().Min(8, "Password must be at least 8 characters.")).
//		Field("confirm", dsl.String().Required("Confirm password is required.")).
//		RefineWith(rules.Equal("confirm", "password", "Passwords don't match")).
//		MustBuild()
//
//	iss := s.Validate(ctx, goform.Record{"email": "bad", "password": "short", "confirm": "short"})
//	// iss: /email invalid_format, /password too_short
package dsl
