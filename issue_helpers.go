package goform

// IssueAt creates an Issue for field with provided code, message and params map.
// This is a convenience helper to improve readability at call sites with many parameters.
func IssueAt(field, code, msg string, params map[string]any) Issue {
	return Issue{Path: At(field).Pointer(), Code: code, Message: msg, Params: params}
}
