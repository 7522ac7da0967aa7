package signup

import (
	"fmt"
	"strings"
	"time"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/codec"
	"github.com/reoring/goform/form"
)

// Defaults returns the initial values of an empty signup form. The birthday
// starts at now, so an untouched form fails the birthday rules.
func Defaults(now time.Time) goform.Record {
	return goform.Record{
		FirstName:       "",
		LastName:        "",
		Birthday:        now,
		Email:           "",
		Password:        "",
		ConfirmPassword: "",
		LuckyDigit:      0,
	}
}

// SampleData returns a complete, valid record for pre-filling the form.
func SampleData() goform.Record {
	return goform.Record{
		FirstName:       "John",
		LastName:        "Doe",
		Birthday:        time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		Email:           "john.doe@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		LuckyDigit:      5,
	}
}

// Sections groups the fields the way the signup screen shows them.
func Sections() []form.Section {
	return []form.Section{
		{Title: "Personal Information", Fields: []string{FirstName, LastName}},
		{Title: "Birthday", Fields: []string{Birthday}},
		{Title: "Email", Fields: []string{Email}},
		{Title: "Password", Fields: []string{Password, ConfirmPassword}},
		{Title: "Your Lucky Number", Fields: []string{LuckyDigit}},
	}
}

// Age returns the age in whole calendar years at now.
func Age(birthday, now time.Time) int {
	years := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() || (now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		years--
	}
	return years
}

// Summary renders the confirmation text for a submitted record.
func Summary(rec goform.Record) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "First Name: %v\n", rec[FirstName])
	fmt.Fprintf(b, "Last Name: %v\n", rec[LastName])
	if t, err := codec.Date(rec[Birthday]); err == nil {
		fmt.Fprintf(b, "Birthday: %s\n", t.Format("2006-01-02"))
	} else {
		fmt.Fprintf(b, "Birthday: %v\n", rec[Birthday])
	}
	fmt.Fprintf(b, "Email: %v\n", rec[Email])
	fmt.Fprintf(b, "Password: %v\n", rec[Password])
	fmt.Fprintf(b, "Confirm Password: %v\n", rec[ConfirmPassword])
	fmt.Fprintf(b, "Lucky Number: %v", rec[LuckyDigit])
	return b.String()
}
