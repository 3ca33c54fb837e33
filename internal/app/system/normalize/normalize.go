// Package normalize provides canonical forms for user-entered fields so
// lookups and uniqueness checks behave consistently.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are stored and
// queried in this form only.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims an account role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a free-text query parameter (search terms and the
// like) without changing case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
