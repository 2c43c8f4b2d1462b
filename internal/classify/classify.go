// Package classify flags clipboard text that looks like a secret.
//
// The result drives best-effort masking of previews in listings and the
// picker. It is a display heuristic and provides no data protection: flagged
// entries are still stored in clear text.
package classify

import (
	"strings"
	"unicode/utf8"
)

const (
	minLength = 8
	maxLength = 128

	// minClasses is how many of upper/lower/digit/special must be present.
	minClasses = 3
)

// IsSensitive reports whether text looks like a password or token.
//
// URLs are never sensitive. Otherwise text qualifies when it is 8 to 128
// runes long, contains no spaces or newlines, and mixes at least three of:
// ASCII uppercase, ASCII lowercase, ASCII digits, and anything that is not
// ASCII alphanumeric. The last class also matches non-ASCII letters, so
// accented words can count as "special".
func IsSensitive(text string) bool {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return false
	}

	n := utf8.RuneCountInString(text)
	if n < minLength || n > maxLength {
		return false
	}
	if strings.ContainsRune(text, ' ') || strings.ContainsRune(text, '\n') {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}

	classes := 0
	for _, present := range []bool{upper, lower, digit, special} {
		if present {
			classes++
		}
	}
	return classes >= minClasses
}
