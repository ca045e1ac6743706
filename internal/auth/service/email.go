package service

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims email and rejects addresses without a local part, an @
// and a dotted domain. Case is kept: addresses match exactly as stored.
func NormalizeEmail(email string) (string, error) {
	email = canonicalEmail(email)
	if email == "" {
		return "", validationError("email is required")
	}
	if !emailPattern.MatchString(email) {
		return "", validationError("invalid email address")
	}
	return email, nil
}

func canonicalEmail(email string) string {
	return strings.TrimSpace(email)
}
