// Package phone canonicalizes raw phone text into chat identifiers.
//
// The canonical chat identifier grammar is "<digits>@c.us", where the digits
// carry the country code with no separators. Normalization strips formatting
// only; it never infers a country code, that is the import source's problem.
package phone

import (
	"regexp"
	"strings"
)

// ChatIDSuffix terminates every canonical chat identifier.
const ChatIDSuffix = "@c.us"

// MinDigits is the minimum normalized digit count accepted during extraction.
// Anything shorter cannot carry a country code plus a subscriber number.
const MinDigits = 6

var chatIDPattern = regexp.MustCompile(`^[0-9]{6,}@c\.us$`)

// Normalize strips every non-digit character from raw phone text.
// Idempotent: normalizing an already-normalized string returns it unchanged.
// Empty input yields empty output; callers must reject it.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ChatID builds a canonical chat identifier from a normalized digit string.
// It does not validate; pair with ValidChatID or check MinDigits first.
func ChatID(digits string) string {
	return digits + ChatIDSuffix
}

// ValidChatID reports whether id conforms to the canonical grammar.
// Identifiers returned by external collaborators must pass this check before
// being trusted.
func ValidChatID(id string) bool {
	return chatIDPattern.MatchString(id)
}
