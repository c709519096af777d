package utils

import "strings"

// Slugify derives a URL-safe slug from an event title: lower-cased,
// non-alphanumeric runs collapsed into single hyphens, trimmed at both
// ends. Diacritics and non-ASCII letters are dropped rather than
// transliterated; callers should treat an empty result as invalid input.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
