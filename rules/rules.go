package rules

import (
	"time"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/codec"
)

// Rule is a cross-field refinement: a predicate over the whole record whose
// failure is reported on Target.
type Rule struct {
	Name    string
	Target  string
	Message string
	// Pred returns true when the record passes.
	Pred func(goform.Record) bool
	// Refs lists the fields Pred reads. They must be declared in the schema.
	Refs []string
}

// Clock returns the current time. A nil Clock means time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// Equal fails when rec[target] differs from rec[other]. The issue is attached
// to target (e.g. confirmPassword against password).
func Equal(target, other, msg string) Rule {
	return Rule{
		Name:    target + "==" + other,
		Target:  target,
		Message: msg,
		Pred: func(rec goform.Record) bool {
			return goform.ValueEqual(rec[target], rec[other])
		},
		Refs: []string{other},
	}
}

// InPast fails unless the date in field is strictly before now.
func InPast(field string, now Clock, msg string) Rule {
	return Rule{
		Name:    "past",
		Target:  field,
		Message: msg,
		Pred: func(rec goform.Record) bool {
			t, err := codec.Date(rec[field])
			if err != nil {
				return false
			}
			return t.Before(now.now())
		},
		Refs: []string{field},
	}
}

// AgeAtLeast fails unless the date in field is strictly before now minus
// years calendar years.
func AgeAtLeast(field string, years int, now Clock, msg string) Rule {
	return Rule{
		Name:    "min_age",
		Target:  field,
		Message: msg,
		Pred: func(rec goform.Record) bool {
			t, err := codec.Date(rec[field])
			if err != nil {
				return false
			}
			return t.Before(now.now().AddDate(-years, 0, 0))
		},
		Refs: []string{field},
	}
}

// When wraps r so that it only runs (and can only fail) while cond holds.
func When(cond Conditional, r Rule) Rule {
	pred := r.Pred
	r.Pred = func(rec goform.Record) bool {
		if !cond.Eval(rec) {
			return true
		}
		return pred == nil || pred(rec)
	}
	r.Refs = append(append([]string(nil), r.Refs...), cond.Fields()...)
	return r
}
