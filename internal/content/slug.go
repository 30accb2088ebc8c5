package content

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphenRuns   = regexp.MustCompile(`-{2,}`)
	slugPattern      = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slugify turns a title into a lowercase, hyphen separated slug with accents
// folded away.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	result := strings.ToLower(strings.TrimSpace(folded))
	result = strings.Join(strings.Fields(result), "-")
	result = strings.ReplaceAll(result, "_", "-")
	result = slugInvalidChars.ReplaceAllString(result, "")
	result = slugHyphenRuns.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug reports whether s is already in canonical slug form.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// TitleFromSlug builds a display title for seeded pages, e.g. "our-plans" -> "Our Plans".
func TitleFromSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	caser := cases.Title(language.English)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
