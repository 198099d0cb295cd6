package leads

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailPattern is a simplified RFC 5322 email check.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	maxEmailLength = 254
	minNameLength  = 2
	maxNameLength  = 100
)

// ValidateEmail checks email format. Returns an empty string when valid,
// otherwise a user-facing error message.
func ValidateEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "Email is required"
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return "Email address too long"
	}
	if !emailPattern.MatchString(email) {
		return "Invalid email format"
	}
	return ""
}

// ValidateName checks name input. Returns an empty string when valid,
// otherwise a user-facing error message.
func ValidateName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required"
	}
	// Rune counts, not bytes: multibyte names are common.
	if utf8.RuneCountInString(name) < minNameLength {
		return "Name must be at least 2 characters"
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "Name must be less than 100 characters"
	}
	return ""
}
