package domain

import (
	"strings"
)

// NormalizeText trims leading and trailing whitespace. Inner spacing and
// case are preserved.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

// NormalizeEmail trims and lowercases an email address. Uniqueness is
// enforced on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
