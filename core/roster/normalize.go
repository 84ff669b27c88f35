package roster

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// vietnameseBase maps the two Vietnamese letters that NFD decomposition
// does not reduce to ASCII.
var vietnameseBase = map[rune]rune{
	'đ': 'd',
	'Đ': 'D',
}

// Normalize strips diacritics from s, yielding ASCII-safe text for
// identifier generation. It applies Unicode canonical decomposition, drops
// combining marks and maps đ/Đ to d/D. Normalizing already-normalized text
// is a no-op; empty input yields empty output.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // combining mark
			continue
		}
		if base, ok := vietnameseBase[r]; ok {
			r = base
		}
		b.WriteRune(r)
	}
	return b.String()
}
