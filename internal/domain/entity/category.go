// Package entity contains the core business objects of the project.
package entity

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Category groups listings for the public discovery pages.
// Categories are admin-managed; ordering is a plain integer sort key.
type Category struct {
	ID     uuid.UUID // The Global Unique Identifier (GUID) for the category.
	Name   string    // Human-readable category name, e.g. "Tecnología".
	Slug   string    // URL-safe unique key, derived from Name when absent.
	Icon   string    // Emoji shown next to the category name.
	Order  int       // Manual sort position on category listings.
	Active bool      // Visibility toggle; inactive categories are hidden from discovery.
}

// Slugify derives a URL-safe slug from a category name: lowercased,
// diacritics stripped, non-alphanumeric runs collapsed to single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case plainASCII(r) != 0:
			b.WriteRune(plainASCII(r))
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

// plainASCII maps the accented letters that show up in Spanish category
// names to their ASCII base letter. Returns 0 for anything else.
func plainASCII(r rune) rune {
	switch r {
	case 'á', 'à', 'ä', 'â':
		return 'a'
	case 'é', 'è', 'ë', 'ê':
		return 'e'
	case 'í', 'ì', 'ï', 'î':
		return 'i'
	case 'ó', 'ò', 'ö', 'ô':
		return 'o'
	case 'ú', 'ù', 'ü', 'û':
		return 'u'
	case 'ñ':
		return 'n'
	default:
		return 0
	}
}
