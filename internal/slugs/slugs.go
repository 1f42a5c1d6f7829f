package slugs

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/goliatone/go-slug"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	validSlug       = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	charMap         = sync.OnceValues(slug.GetCharMap)
)

// Slugify converts a title into a lowercase hyphenated slug. Accented
// letters are transliterated through the go-slug character map and every
// other run of non alphanumeric characters becomes a single hyphen. The
// result is empty when the input has no letters or digits; callers treat
// that as invalid. Slugify(Slugify(x)) == Slugify(x) for every x.
func Slugify(title string) string {
	value := strings.ToLower(transliterate(title))
	value = nonAlphanumeric.ReplaceAllString(value, "-")
	return strings.Trim(value, "-")
}

// transliterate maps non ASCII letters to their ASCII spelling. Symbols are
// left alone so they separate words instead of turning into words.
func transliterate(value string) string {
	mapping, err := charMap()
	if err != nil {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r > unicode.MaxASCII && unicode.IsLetter(r) {
			if mapped, ok := mapping[string(r)]; ok {
				b.WriteString(mapped)
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsValid reports whether value is already a well formed slug.
func IsValid(value string) bool {
	return validSlug.MatchString(value)
}

// Unique returns base when it is not taken, otherwise the first free
// base-N variant starting at 2.
func Unique(base string, taken func(string) bool) string {
	if taken == nil || !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}
