package history

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Mask replaces the preview of an entry flagged as sensitive.
const Mask = "••••••••"

// previewRunes caps the length of a preview line.
const previewRunes = 100

// Entry is one recorded clipboard snapshot.
type Entry struct {
	Timestamp  int64 // seconds since the Unix epoch
	Content    string
	IsPassword bool
}

func newEntry(content string, isPassword bool, now time.Time) Entry {
	return Entry{
		Timestamp:  now.Unix(),
		Content:    content,
		IsPassword: isPassword,
	}
}

// Time returns the entry timestamp as a time.Time.
func (e Entry) Time() time.Time { return time.Unix(e.Timestamp, 0) }

// Preview renders e as a single display line. Sensitive entries render as
// Mask when maskPasswords is set; everything else renders as the first line
// of the content cut to 100 runes.
func Preview(e Entry, maskPasswords bool) string {
	if maskPasswords && e.IsPassword {
		return Mask
	}
	line, _, _ := strings.Cut(e.Content, "\n")
	line = strings.TrimSuffix(line, "\r")
	return truncateRunes(line, previewRunes)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for off := range s {
		if i == n {
			return s[:off]
		}
		i++
	}
	return s
}
