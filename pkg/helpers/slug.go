package helpers

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Slugify derives a URL-safe slug from a post title: lowercase, drop
// everything but letters, digits, spaces and hyphens, turn whitespace runs
// into single hyphens, collapse repeated hyphens, trim.
func Slugify(title string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			hyphen = false
		case r == '-' || unicode.IsSpace(r):
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SlugSuffix returns a short random token used to disambiguate a slug that
// collided with an existing post.
func SlugSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}
