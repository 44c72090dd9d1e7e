// utils/sanitize.go
package utils

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Sanitize makes free text safe for storage and display: tag-like substrings
// are stripped, then &, < and > are escaped, then surrounding whitespace is
// trimmed. Existing entities are normalized first so the function is
// idempotent: Sanitize(Sanitize(x)) == Sanitize(x).
//
// Only applied to the outbound copy of a draft at save/preview time; the live
// draft keeps whatever the user typed. Never applied to numeric fields.
func Sanitize(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = escaper.Replace(s)
	return strings.TrimSpace(s)
}
