// internal/app/system/inputval/inputval.go

// Package inputval holds small syntactic validators for values arriving
// from the public API before they reach a store.
package inputval

import (
	"net/mail"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsValidEmail reports whether s is a plausible bare email address.
// Display-name forms ("Name <a@b>") are rejected; single-label domains
// (user@localhost) are accepted for dev and test environments.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		// Either unparsable or a display-name form.
		return false
	}

	at := strings.LastIndex(s, "@")
	local, domain := s[:at], s[at+1:]
	if local == "" || domain == "" {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") || strings.Contains(domain, "..") {
		return false
	}
	return true
}

// IsValidObjectID reports whether s (after trimming) is a 24-character
// hex Mongo ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}
