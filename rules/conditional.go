package rules

import (
	"time"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/codec"
)

// Op defines simple comparison operators for If(...).
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Conditional composes conditions over record fields.
type Conditional struct {
	field string
	op    Op
	want  any
	all   []Conditional // composite AND
	any   []Conditional // composite OR
}

// If builds a conditional that compares a field against a value using an operator.
func If(field string, op Op, want any) Conditional {
	return Conditional{field: field, op: op, want: want}
}

// IfAll builds a conditional that requires all conditions to hold.
func IfAll(conds ...Conditional) Conditional { return Conditional{all: conds} }

// IfAny builds a conditional that requires any condition to hold.
func IfAny(conds ...Conditional) Conditional { return Conditional{any: conds} }

// And combines the receiver with additional conditions using logical AND.
func (c Conditional) And(others ...Conditional) Conditional {
	return IfAll(append([]Conditional{c}, others...)...)
}

// Or combines the receiver with additional conditions using logical OR.
func (c Conditional) Or(others ...Conditional) Conditional {
	return IfAny(append([]Conditional{c}, others...)...)
}

// Eval reports whether the condition holds for rec.
func (c Conditional) Eval(rec goform.Record) bool {
	if len(c.all) > 0 {
		for _, it := range c.all {
			if !it.Eval(rec) {
				return false
			}
		}
		return true
	}
	if len(c.any) > 0 {
		for _, it := range c.any {
			if it.Eval(rec) {
				return true
			}
		}
		return false
	}
	cur, ok := rec[c.field]
	if !ok {
		return false
	}
	return compare(cur, c.op, c.want)
}

// Fields returns the field names the condition reads, in declaration order.
func (c Conditional) Fields() []string {
	var out []string
	for _, it := range c.all {
		out = append(out, it.Fields()...)
	}
	for _, it := range c.any {
		out = append(out, it.Fields()...)
	}
	if c.field != "" {
		out = append(out, c.field)
	}
	return out
}

func compare(cur any, op Op, want any) bool {
	switch op {
	case Eq:
		return goform.ValueEqual(cur, want)
	case Ne:
		return !goform.ValueEqual(cur, want)
	case Lt, Le, Gt, Ge:
		return compareOrdered(cur, op, want)
	default:
		return false
	}
}

// compareOrdered supports numbers and dates; anything else never matches.
func compareOrdered(cur any, op Op, want any) bool {
	if a, ok := cur.(time.Time); ok {
		b, err := codec.Date(want)
		if err != nil {
			return false
		}
		return ordered(a.Compare(b), op)
	}
	a, err := codec.Number(cur, false)
	if err != nil {
		return false
	}
	b, err := codec.Number(want, false)
	if err != nil {
		return false
	}
	switch {
	case a < b:
		return ordered(-1, op)
	case a > b:
		return ordered(1, op)
	default:
		return ordered(0, op)
	}
}

func ordered(cmp int, op Op) bool {
	switch op {
	case Lt:
		return cmp < 0
	case Le:
		return cmp <= 0
	case Gt:
		return cmp > 0
	case Ge:
		return cmp >= 0
	}
	return false
}
