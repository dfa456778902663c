package detection

import "unicode/utf8"

// runeIndex converts the byte offsets reported by regexp into rune offsets.
type runeIndex struct {
	byteToRune []int
}

func newRuneIndex(text string) *runeIndex {
	idx := make([]int, len(text)+1)
	r := 0
	// an invalid byte decodes as a one byte rune, the same way range and
	// []rune(text) count it
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		for k := 0; k < size; k++ {
			idx[i+k] = r
		}
		i += size
		r++
	}
	idx[len(text)] = r
	return &runeIndex{byteToRune: idx}
}

func (ri *runeIndex) runeOffset(byteOffset int) int {
	return ri.byteToRune[byteOffset]
}

// sliceRunes returns runes[start:end] as a string, clamped to the text.
func sliceRunes(runes []rune, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
