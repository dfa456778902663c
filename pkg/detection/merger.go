package detection

import (
	"sort"
	"unicode"
)

// maxMergeGap is the largest filler (in runes) bridged between two spans.
const maxMergeGap = 2

// Merge coalesces consecutive same-type spans separated only by whitespace
// or dashes, rebuilding identifiers that formatting split into pieces. The
// source text is passed explicitly so the merger holds no per-call state.
// The input slice is not modified.
func Merge(text string, spans Spans) Spans {
	if len(spans) == 0 {
		return Spans{}
	}
	sorted := make(Spans, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	runes := []rune(text)
	merged := make(Spans, 0, len(sorted))
	for _, current := range sorted {
		if n := len(merged); n > 0 {
			prev := &merged[n-1]
			if prev.EntityType == current.EntityType && mergeable(runes, prev.End, current.Start) {
				if current.End > prev.End {
					prev.End = current.End
				}
				prev.Text = sliceRunes(runes, prev.Start, prev.End)
				continue
			}
		}
		merged = append(merged, current)
	}
	return merged
}

// mergeable reports whether the gap [from, to) is short and only filler.
// A negative gap (same-type overlap) is empty filler.
func mergeable(runes []rune, from, to int) bool {
	if to-from > maxMergeGap {
		return false
	}
	for i := from; i < to && i < len(runes); i++ {
		if !isFiller(runes[i]) {
			return false
		}
	}
	return true
}

func isFiller(r rune) bool {
	return r == '-' || unicode.IsSpace(r)
}
