// Package signup declares the signup form: its schema, sections, default
// values and the sample data used to pre-fill it.
package signup

import (
	"time"

	"github.com/reoring/goform/dsl"
	"github.com/reoring/goform/rules"
)

// Field names in declaration order.
const (
	FirstName       = "firstName"
	LastName        = "lastName"
	Birthday        = "birthday"
	Email           = "email"
	Password        = "password"
	ConfirmPassword = "confirmPassword"
	LuckyDigit      = "luckyDigit"
)

// MinAge is the minimum age in years accepted by the birthday rule.
const MinAge = 13

// Messages shown to the user.
const (
	MsgFirstNameRequired       = "First name is required."
	MsgLastNameRequired        = "Last name is required."
	MsgBirthdayRequired        = "Birthday is required."
	MsgBirthdayInFuture        = "Birthday cannot be in the future."
	MsgTooYoung                = "You must be at least 13 years old."
	MsgInvalidEmail            = "Invalid email address."
	MsgPasswordTooShort        = "Password must be at least 8 characters."
	MsgConfirmPasswordRequired = "Confirm password is required."
	MsgPasswordMismatch        = "Passwords don't match"
	MsgLuckyNotNumber          = "Lucky number must be a number."
	MsgLuckyNegative           = "Lucky number cannot be negative."
	MsgLuckyTooBig             = "Lucky number cannot be greater than 9."
)

// Schema builds the signup schema. now is the clock used by the birthday
// rules; nil means time.Now.
func Schema(now func() time.Time) (*dsl.Schema, error) {
	return dsl.Object().
		Field(FirstName, dsl.String().Min(1, MsgFirstNameRequired)).
		Field(LastName, dsl.String().Min(1, MsgLastNameRequired)).
		Field(Birthday, dsl.Date().Required(MsgBirthdayRequired)).
		Field(Email, dsl.String().Email(MsgInvalidEmail)).
		Field(Password, dsl.String().Min(8, MsgPasswordTooShort)).
		Field(ConfirmPassword, dsl.String().Min(1, MsgConfirmPasswordRequired)).
		Field(LuckyDigit, dsl.Number().
			Coerce(MsgLuckyNotNumber).
			Min(0, MsgLuckyNegative).
			Max(9, MsgLuckyTooBig)).
		RefineWith(
			rules.Equal(ConfirmPassword, Password, MsgPasswordMismatch),
			// future-check precedes age-check; the first failure wins
			rules.InPast(Birthday, now, MsgBirthdayInFuture),
			rules.AgeAtLeast(Birthday, MinAge, now, MsgTooYoung),
		).
		Build()
}
