// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips markup from user-supplied text before it is
// persisted. Submission fields (payer name, purpose, addresses) are plain
// text; anything that looks like HTML is removed outright.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Strip removes all HTML tags and attributes from s and trims the result.
func Strip(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
