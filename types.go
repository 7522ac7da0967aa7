package goform

import "fmt"

// Kind is the declared value type of a field.
type Kind int

const (
	KindString Kind = iota // Text input.
	KindNumber             // Numeric input, coerced from strings when allowed.
	KindDate               // Date/time input.
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ValidateMode selects when a form controller runs validation besides submit.
type ValidateMode int

const (
	ValidateOnSubmit ValidateMode = iota // Only on submit.
	ValidateOnChange                     // Also after every field change.
	ValidateOnBlur                       // Also when a field loses focus.
)

// ParseValidateMode maps "submit", "change" and "blur" to a ValidateMode.
func ParseValidateMode(s string) (ValidateMode, error) {
	switch s {
	case "", "submit":
		return ValidateOnSubmit, nil
	case "change":
		return ValidateOnChange, nil
	case "blur":
		return ValidateOnBlur, nil
	}
	return ValidateOnSubmit, fmt.Errorf("goform: unknown validate mode %q", s)
}

func (m ValidateMode) String() string {
	switch m {
	case ValidateOnChange:
		return "change"
	case ValidateOnBlur:
		return "blur"
	default:
		return "submit"
	}
}
