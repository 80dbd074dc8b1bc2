package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// turkishFold covers the letters that do not decompose into a base letter
// plus a combining mark.
var turkishFold = strings.NewReplacer("ı", "i", "İ", "i", "ß", "ss", "æ", "ae", "ø", "o", "đ", "d", "ł", "l")

// Slugify lowercases s, strips diacritics and joins the remaining
// alphanumeric runs with single dashes.
func Slugify(s string) string {
	s = turkishFold.Replace(s)
	s = strings.ToLower(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err == nil {
		s = folded
	}

	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
