package engine

import (
	"context"
	"strconv"
	"unicode/utf16"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/codec"
	"github.com/reoring/goform/i18n"
)

// RuleKind tags the variant stored in a Rule.
type RuleKind int

const (
	RuleRequired RuleKind = iota
	RuleMinLength
	RuleMaxLength
	RuleEmail
	RuleMin
	RuleMax
	RuleCross
)

// Rule is a single declarative check. Only the parameters relevant to Kind are set.
type Rule struct {
	Kind    RuleKind
	Name    string
	Message string
	Length  int                     // MinLength/MaxLength
	Bound   float64                 // Min/Max
	Pred    func(goform.Record) bool // Cross; true means pass
}

// Field is the compiled plan for one declared field.
type Field struct {
	Name            string
	Kind            goform.Kind
	CoerceString    bool   // numbers: accept numeric strings
	TypeMessage     string // coercion failure
	RequiredMessage string // dates: missing value
	Rules           []Rule // single-field rules, declaration order
	Cross           []Rule // cross-field rules targeting this field, declaration order
}

// Plan evaluates fields in declaration order.
type Plan struct {
	Fields []Field
	index  map[string]int
}

// NewPlan indexes fields by name. Callers guarantee names are unique.
func NewPlan(fields []Field) *Plan {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Name] = i
	}
	return &Plan{Fields: fields, index: idx}
}

// Lookup returns the field plan for name.
func (p *Plan) Lookup(name string) (*Field, bool) {
	i, ok := p.index[name]
	if !ok {
		return nil, false
	}
	return &p.Fields[i], true
}

// Run coerces every field, then evaluates rules field by field. Each field
// reports at most one issue: the first failing check wins.
func (p *Plan) Run(ctx context.Context, rec goform.Record) (goform.Record, goform.Issues) {
	out, typeIssues := p.coerce(rec)
	var iss goform.Issues
	for i := range p.Fields {
		f := &p.Fields[i]
		it, failed := typeIssues[f.Name]
		if !failed {
			it, failed = f.check(out)
		}
		if !failed {
			continue
		}
		iss = append(iss, it)
		if goform.IsFailFast(ctx) {
			break
		}
	}
	return out, iss
}

// RunField evaluates a single field against the whole record.
func (p *Plan) RunField(_ context.Context, rec goform.Record, name string) (goform.Issue, bool) {
	f, ok := p.Lookup(name)
	if !ok {
		return goform.Issue{}, false
	}
	out, typeIssues := p.coerce(rec)
	if it, bad := typeIssues[name]; bad {
		return it, true
	}
	return f.check(out)
}

// coerce converts every declared field into its canonical Go type. Fields
// that fail keep their raw value in the output and get a type issue.
func (p *Plan) coerce(rec goform.Record) (goform.Record, map[string]goform.Issue) {
	out := rec.Clone()
	var bad map[string]goform.Issue
	for i := range p.Fields {
		f := &p.Fields[i]
		v, it, ok := f.coerce(rec[f.Name])
		if !ok {
			if bad == nil {
				bad = map[string]goform.Issue{}
			}
			bad[f.Name] = it
			continue
		}
		out[f.Name] = v
	}
	return out, bad
}

func (f *Field) coerce(raw any) (any, goform.Issue, bool) {
	ref := goform.At(f.Name)
	switch f.Kind {
	case goform.KindNumber:
		n, err := codec.Number(raw, f.CoerceString)
		if err != nil {
			return nil, f.typeIssue(ref, "number"), false
		}
		return n, goform.Issue{}, true
	case goform.KindDate:
		t, err := codec.Date(raw)
		if codec.IsMissing(err) {
			msg := f.RequiredMessage
			if msg == "" {
				msg = i18n.T(goform.CodeRequired, nil)
			}
			it := ref.Issue(goform.CodeRequired, msg)
			it.Rule = "required"
			return nil, it, false
		}
		if err != nil {
			return nil, f.typeIssue(ref, "date"), false
		}
		return t, goform.Issue{}, true
	default:
		s, err := codec.Text(raw)
		if err != nil {
			return nil, f.typeIssue(ref, "string"), false
		}
		return s, goform.Issue{}, true
	}
}

func (f *Field) typeIssue(ref goform.PathRef, expected string) goform.Issue {
	msg := f.TypeMessage
	if msg == "" {
		msg = i18n.T(goform.CodeInvalidType, map[string]string{"expected": expected})
	}
	it := ref.Issue(goform.CodeInvalidType, msg, "expected", expected)
	it.Rule = "type"
	return it
}

// check runs single-field rules then cross-field rules against a coerced record.
func (f *Field) check(rec goform.Record) (goform.Issue, bool) {
	v := rec[f.Name]
	for _, r := range f.Rules {
		if it, failed := evalRule(f.Name, r, v); failed {
			return it, true
		}
	}
	for _, r := range f.Cross {
		if r.Pred == nil || r.Pred(rec) {
			continue
		}
		return issue(f.Name, r, goform.CodeCustom, nil), true
	}
	return goform.Issue{}, false
}

func evalRule(field string, r Rule, v any) (goform.Issue, bool) {
	switch r.Kind {
	case RuleRequired:
		if s, ok := v.(string); ok && s == "" {
			return issue(field, r, goform.CodeRequired, nil), true
		}
		if v == nil {
			return issue(field, r, goform.CodeRequired, nil), true
		}
	case RuleMinLength:
		s, _ := v.(string)
		if n := textLen(s); n < r.Length {
			return issue(field, r, goform.CodeTooShort, map[string]any{"min": r.Length, "got": n}), true
		}
	case RuleMaxLength:
		s, _ := v.(string)
		if n := textLen(s); n > r.Length {
			return issue(field, r, goform.CodeTooLong, map[string]any{"max": r.Length, "got": n}), true
		}
	case RuleEmail:
		s, _ := v.(string)
		if !IsEmail(s) {
			return issue(field, r, goform.CodeInvalidFormat, map[string]any{"format": "email"}), true
		}
	case RuleMin:
		n, _ := v.(float64)
		if n < r.Bound {
			return issue(field, r, goform.CodeTooSmall, map[string]any{"min": r.Bound, "got": n}), true
		}
	case RuleMax:
		n, _ := v.(float64)
		if n > r.Bound {
			return issue(field, r, goform.CodeTooBig, map[string]any{"max": r.Bound, "got": n}), true
		}
	}
	return goform.Issue{}, false
}

func issue(field string, r Rule, code string, params map[string]any) goform.Issue {
	msg := r.Message
	if msg == "" {
		msg = i18n.T(code, stringify(params))
	}
	it := goform.IssueAt(field, code, msg, params)
	it.Rule = r.Name
	return it
}

func stringify(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		switch x := v.(type) {
		case string:
			out[k] = x
		case int:
			out[k] = strconv.Itoa(x)
		case float64:
			out[k] = strconv.FormatFloat(x, 'f', -1, 64)
		}
	}
	return out
}

// textLen counts UTF-16 code units, the length a browser or JS runtime
// reports for the same text.
func textLen(s string) int {
	n := 0
	for _, r := range s {
		if w := utf16.RuneLen(r); w > 0 {
			n += w
		} else {
			n++
		}
	}
	return n
}
