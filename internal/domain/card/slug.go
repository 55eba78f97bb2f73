package card

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugBaseLength = 50

// Slugify turns a display name into a lower-case, hyphen separated, accent free token.
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}

	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(plain) {
		if b.Len() >= maxSlugBaseLength {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "card"
	}
	return slug
}

// BuildSlug joins a slugified name with a random suffix.
func BuildSlug(name, suffix string) string {
	return Slugify(name) + "-" + suffix
}
