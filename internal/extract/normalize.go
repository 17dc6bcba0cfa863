package extract

import (
	"strings"

	"gameid/internal/platform"
)

// NormalizeSerial canonicalizes a raw serial for use as a lookup key:
// uppercase, with padding and the separator characters publishers vary on
// removed. The function is a pure character filter, so applying it twice
// yields the same string, and both extraction and database indexing use it.
func NormalizeSerial(tag platform.Tag, raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '-', '_', ' ', '.', 0:
			continue
		case '#':
			// Sega serials sometimes carry a trailing '#'; other
			// platforms never use the character meaningfully.
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
