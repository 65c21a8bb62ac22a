package utils

import (
	"regexp"
	"strings"
)

// RFC 5321 caps a forward path at 254 characters
const maxEmailLength = 254

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9\-]+(\.[a-z0-9\-]+)*\.[a-z]{2,}$`)

// SanitizeEmail trims and lowercases an address so lookups are case-insensitive
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail reports whether email is a plausible address. It
// sanitizes first, so callers may pass raw input.
func ValidateEmail(email string) bool {
	email = SanitizeEmail(email)
	if email == "" || len(email) > maxEmailLength {
		return false
	}
	return emailPattern.MatchString(email)
}
