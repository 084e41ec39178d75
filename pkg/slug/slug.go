package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from a display name. Icon glyphs and
// any other non-ASCII runes are dropped, so catalog names that lead with an
// emoji still produce clean slugs.
//
// Examples:
//   - "🍙Onigiri" → "onigiri"
//   - "🍠Sweet Potato" → "sweet-potato"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	// Replace any run of characters outside [a-z0-9] with a single hyphen.
	s = nonAlnum.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
