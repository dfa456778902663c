package pii_entities

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// dottedIClass matches every Turkish casing of the letter i. Go's (?i) uses
// Unicode simple folding, which never relates İ (U+0130) or ı (U+0131) to
// i and I, so "DİYABET" would not match "diyabet" without it.
const dottedIClass = `[iİıI]`

// TurkishInsensitive quotes a literal for use in a regexp and widens every
// i/İ/ı/I so that Turkish upper and lower casings match each other.
func TurkishInsensitive(literal string) string {
	var b strings.Builder
	for _, r := range literal {
		switch r {
		case 'i', 'İ', 'ı', 'I':
			b.WriteString(dottedIClass)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}

// VocabularyRegexp compiles a case-insensitive alternation over words.
// Longer words are tried first: Go takes the leftmost alternative rather
// than the longest, and "Mahalle" must not shadow "Mahallesi".
func VocabularyRegexp(words []string) *regexp.Regexp {
	ordered := append([]string(nil), words...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return utf8.RuneCountInString(ordered[i]) > utf8.RuneCountInString(ordered[j])
	})
	alternatives := make([]string, len(ordered))
	for i, w := range ordered {
		alternatives[i] = TurkishInsensitive(w)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(alternatives, "|") + `)`)
}
