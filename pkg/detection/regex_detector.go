package detection

import (
	"context"

	"github.com/NeuralTrust/TrustMask/pkg/pii_entities"
)

// RegexDetector applies a fixed pattern table. Each pattern scans the text
// independently, so spans of different patterns may overlap; that is left
// to the resolver.
type RegexDetector struct {
	source   Source
	patterns []pii_entities.Pattern
}

// NewRegexDetector builds a detector over the given patterns.
func NewRegexDetector(source Source, patterns []pii_entities.Pattern) *RegexDetector {
	return &RegexDetector{
		source:   source,
		patterns: patterns,
	}
}

// NewStructuredDetector detects identifiers, contact and financial data.
func NewStructuredDetector() *RegexDetector {
	return NewRegexDetector(SourceRegex, pii_entities.StructuredPatterns())
}

// NewMedicalDetector detects medical conditions and medications.
func NewMedicalDetector() *RegexDetector {
	return NewRegexDetector(SourceMedical, pii_entities.MedicalPatterns())
}

func (d *RegexDetector) Source() Source { return d.source }

func (d *RegexDetector) Detect(_ context.Context, text string) (Spans, error) {
	return d.scan(text), nil
}

func (d *RegexDetector) scan(text string) Spans {
	var spans Spans
	var idx *runeIndex
	for _, pattern := range d.patterns {
		spans = appendMatches(spans, text, &idx, pattern)
	}
	return spans
}

// appendMatches emits one span per boundary-respecting, valid match. The
// rune index is built lazily since most texts match nothing.
func appendMatches(spans Spans, text string, idx **runeIndex, pattern pii_entities.Pattern) Spans {
	for _, loc := range pattern.Regexp.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start == end || !pii_entities.AtWordBoundary(text, start, end) {
			continue
		}
		candidate := text[start:end]
		if !pattern.Valid(candidate) {
			continue
		}
		if *idx == nil {
			*idx = newRuneIndex(text)
		}
		spans = append(spans, Span{
			EntityType: pattern.Entity,
			Start:      (*idx).runeOffset(start),
			End:        (*idx).runeOffset(end),
			Text:       candidate,
			Confidence: pattern.Confidence,
		})
	}
	return spans
}
