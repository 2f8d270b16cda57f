package cards

import "strings"

var accentFolder = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "c", "œ", "oe", "æ", "ae",
	"À", "a", "Â", "a", "Ä", "a",
	"É", "e", "È", "e", "Ê", "e", "Ë", "e",
	"Î", "i", "Ï", "i",
	"Ô", "o", "Ö", "o",
	"Ù", "u", "Û", "u", "Ü", "u",
	"Ç", "c", "Œ", "oe", "Æ", "ae",
)

// Slug lowercases s, folds French accents and collapses every other
// non-alphanumeric run into a single underscore. Used for deterministic
// export filenames.
func Slug(s string) string {
	s = accentFolder.Replace(strings.TrimSpace(s))
	s = strings.ToLower(s)
	var b strings.Builder
	lastSep := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSep = false
		default:
			if !lastSep {
				b.WriteByte('_')
				lastSep = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// TypeSlug is the slug of a card's category, used in export filenames.
func TypeSlug(c Category) string {
	return Slug(string(c))
}
