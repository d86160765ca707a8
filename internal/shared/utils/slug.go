package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// GenerateSlug converts arbitrary text into a kebab-case slug.
//
//	"My Post Title!"   → "my-post-title"
//	"Nguyễn Nhật Ánh"  → "nguyen-nhat-anh"
//	"helloWorld HTML5" → "hello-world-html5"
//
// The result only contains lowercase letters, digits and single hyphens, never
// starts or ends with a hyphen, and GenerateSlug(GenerateSlug(s)) == GenerateSlug(s).
func GenerateSlug(input string) string {
	src := []rune(RemoveDiacritics(input))

	var b strings.Builder
	b.Grow(len(src))

	pendingSep := false
	for i, r := range src {
		if !isWordRune(r) {
			pendingSep = b.Len() > 0
			continue
		}

		if b.Len() > 0 && !pendingSep && isCamelBoundary(src, i) {
			pendingSep = true
		}
		if pendingSep {
			b.WriteByte('-')
			pendingSep = false
		}
		b.WriteRune(unicode.ToLower(r))
	}

	// lowercasing runs after diacritics were stripped; strip again so the
	// output is already a fixed point
	return RemoveDiacritics(b.String())
}

// RemoveDiacritics strips combining marks: "Ánh" → "Anh", "đ" → "d".
func RemoveDiacritics(input string) string {
	input = strings.NewReplacer("đ", "d", "Đ", "D").Replace(input)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isCamelBoundary reports whether a new word starts at src[i]:
// "fooBar" splits before 'B', "HTMLParser" splits before 'P'.
// Only runes that change when lowercased count as uppercase, so the
// lowercased output never has a boundary the input lacked.
func isCamelBoundary(src []rune, i int) bool {
	if i == 0 || !isCasedUpper(src[i]) {
		return false
	}

	prev := src[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	if isCasedUpper(prev) && i+1 < len(src) && unicode.IsLower(src[i+1]) {
		return true
	}
	return false
}

// isCasedUpper excludes uppercase letters without a lowercase form ('ℂ', 'ϒ').
func isCasedUpper(r rune) bool {
	return unicode.IsUpper(r) && unicode.ToLower(r) != r
}
