package detection

import "sort"

// Resolve reduces the union of all detector outputs to a non-overlapping
// set. Candidates are visited by ascending start (ties keep input order).
// Each candidate is compared with the accepted spans in insertion order and
// only against the first one it overlaps: it replaces that span when its
// confidence is strictly higher and is dropped otherwise.
//
// Because every accepted span starts at or before the current candidate, a
// candidate can overlap at most one accepted span, so stopping at the first
// overlap still yields a pairwise disjoint result.
func Resolve(spans Spans) Spans {
	if len(spans) == 0 {
		return Spans{}
	}
	sorted := make(Spans, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	accepted := make(Spans, 0, len(sorted))
	for _, candidate := range sorted {
		overlapping := false
		for i, existing := range accepted {
			if !candidate.Overlaps(existing) {
				continue
			}
			overlapping = true
			if candidate.Confidence > existing.Confidence {
				accepted[i] = candidate
			}
			break
		}
		if !overlapping {
			accepted = append(accepted, candidate)
		}
	}
	return accepted
}
