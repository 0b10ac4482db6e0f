// internal/app/system/normalize/normalize.go

// Package normalize canonicalizes user-supplied identity fields before they
// are persisted or used in lookups. Lookups by email rely on every writer
// having gone through Email first.
package normalize

import "strings"

// Email lowercases and trims an email address. Empty or whitespace-only
// input normalizes to "".
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and collapses internal runs of
// whitespace to single spaces. Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Phone strips spaces, dashes and parentheses, keeping digits and a
// leading plus sign.
func Phone(s string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
