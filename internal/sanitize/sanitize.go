// Package sanitize strips HTML from user-supplied free text. All markup is
// removed outright, never escaped and kept, so a payload that is pure markup
// collapses to an empty string and fails the later emptiness checks.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Strip removes every HTML tag from s and trims surrounding whitespace.
// Entities introduced by the sanitizer are decoded back so stored text stays
// plain ("&amp;" does not leak into titles).
func Strip(s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
