package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Vietnamese đ/Đ are not combining-mark decompositions, so NFD folding alone
// misses them.
var dReplacer = strings.NewReplacer("đ", "d", "Đ", "d")

// Make converts a display name into a URL slug: lowercase ASCII, diacritics
// folded, runs of non-alphanumerics collapsed into single hyphens.
// "Điện thoại iPhone 15 Pro" -> "dien-thoai-iphone-15-pro".
func Make(name string) string {
	folded := fold(dReplacer.Replace(name))

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(folded) {
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

// fold strips combining marks after canonical decomposition (é -> e, ư -> u).
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
