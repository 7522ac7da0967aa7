package engine

import (
	"regexp"
	"strings"
)

// emailPattern mirrors the permissive address check used by common schema
// validators: dot-atom local part, hostname labels, alphabetic TLD.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	if s == "" || strings.HasPrefix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	return emailPattern.MatchString(s)
}
