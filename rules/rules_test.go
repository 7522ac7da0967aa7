package rules_test

import (
	"reflect"
	"testing"
	"time"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/rules"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestEqual(t *testing.T) {
	r := rules.Equal("confirmPassword", "password", "Passwords don't match")
	if r.Target != "confirmPassword" {
		t.Fatalf("unexpected target %q", r.Target)
	}
	if !r.Pred(goform.Record{"password": "x", "confirmPassword": "x"}) {
		t.Fatalf("expected match to pass")
	}
	if r.Pred(goform.Record{"password": "x", "confirmPassword": "y"}) {
		t.Fatalf("expected mismatch to fail")
	}
}

func TestInPast(t *testing.T) {
	r := rules.InPast("birthday", clock, "future")
	if !r.Pred(goform.Record{"birthday": fixedNow.Add(-time.Second)}) {
		t.Fatalf("expected past date to pass")
	}
	if r.Pred(goform.Record{"birthday": fixedNow}) {
		t.Fatalf("expected now to fail (strictly in the past)")
	}
	if r.Pred(goform.Record{"birthday": fixedNow.AddDate(0, 0, 1)}) {
		t.Fatalf("expected future date to fail")
	}
	if r.Pred(goform.Record{"birthday": "not a date"}) {
		t.Fatalf("expected unreadable date to fail")
	}
}

func TestAgeAtLeast_Boundaries(t *testing.T) {
	r := rules.AgeAtLeast("birthday", 13, clock, "too young")
	if r.Pred(goform.Record{"birthday": fixedNow.AddDate(-13, 0, 1)}) {
		t.Fatalf("13 years minus one day must fail")
	}
	if !r.Pred(goform.Record{"birthday": fixedNow.AddDate(-13, 0, -1)}) {
		t.Fatalf("13 years plus one day must pass")
	}
	if r.Pred(goform.Record{"birthday": fixedNow.AddDate(-13, 0, 0)}) {
		t.Fatalf("exactly 13 years must fail (strict)")
	}
}

func TestNilClockUsesWallTime(t *testing.T) {
	r := rules.InPast("d", nil, "")
	if !r.Pred(goform.Record{"d": time.Now().Add(-time.Hour)}) {
		t.Fatalf("expected wall clock to be used")
	}
}

func TestWhen_Conditional(t *testing.T) {
	base := rules.Rule{Target: "reason", Pred: func(rec goform.Record) bool { return rec["reason"] != "" }}
	r := rules.When(rules.If("status", rules.Eq, "rejected"), base)

	if !r.Pred(goform.Record{"status": "ok", "reason": ""}) {
		t.Fatalf("rule must not fail when condition is false")
	}
	if r.Pred(goform.Record{"status": "rejected", "reason": ""}) {
		t.Fatalf("rule must fail when condition holds")
	}
}

func TestConditional_Composite(t *testing.T) {
	rec := goform.Record{"n": 5.0, "d": fixedNow}
	if !rules.If("n", rules.Ge, 5).And(rules.If("n", rules.Lt, 9)).Eval(rec) {
		t.Fatalf("expected AND to hold")
	}
	if rules.IfAll(rules.If("n", rules.Gt, 5), rules.If("n", rules.Le, 9)).Eval(rec) {
		t.Fatalf("expected AND to fail")
	}
	if !rules.If("n", rules.Eq, 1).Or(rules.If("d", rules.Lt, "2030-01-01")).Eval(rec) {
		t.Fatalf("expected OR to hold via date comparison")
	}
	if rules.If("missing", rules.Eq, nil).Eval(rec) {
		t.Fatalf("missing field never matches")
	}
	if rules.If("n", rules.Ne, 5).Eval(rec) {
		t.Fatalf("5.0 equals 5 across numeric types")
	}
}

func TestRefs(t *testing.T) {
	if got := rules.Equal("confirmPassword", "password", "").Refs; !reflect.DeepEqual(got, []string{"password"}) {
		t.Fatalf("Equal refs = %v", got)
	}
	if got := rules.AgeAtLeast("birthday", 13, nil, "").Refs; !reflect.DeepEqual(got, []string{"birthday"}) {
		t.Fatalf("AgeAtLeast refs = %v", got)
	}
	cond := rules.If("plan", rules.Eq, "team").And(rules.IfAny(rules.If("seats", rules.Lt, 2), rules.If("region", rules.Eq, "eu")))
	if got := cond.Fields(); !reflect.DeepEqual(got, []string{"plan", "seats", "region"}) {
		t.Fatalf("Fields = %v", got)
	}
	r := rules.When(cond, rules.Equal("seats", "minSeats", ""))
	if got := r.Refs; !reflect.DeepEqual(got, []string{"minSeats", "plan", "seats", "region"}) {
		t.Fatalf("When refs = %v", got)
	}
}
