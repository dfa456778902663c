// Package detection turns raw text into typed, confidence-scored spans and
// reconciles the spans of independent detectors into one non-overlapping
// set. All offsets are rune (code point) offsets into the original text.
package detection

import (
	"context"

	"github.com/NeuralTrust/TrustMask/pkg/pii_entities"
)

// Source names the detector family a span came from.
type Source string

const (
	SourceRegex    Source = "regex"
	SourceNER      Source = "ner"
	SourceLocation Source = "location"
	SourceMedical  Source = "medical"
)

// Span is one detected instance of sensitive content covering the half-open
// rune range [Start, End).
type Span struct {
	EntityType pii_entities.Entity `json:"entity_type"`
	Start      int                 `json:"start"`
	End        int                 `json:"end"`
	Text       string              `json:"text"`
	Confidence float64             `json:"confidence"`
}

// Overlaps reports whether the two half-open ranges intersect.
func (s Span) Overlaps(other Span) bool {
	return !(s.End <= other.Start || s.Start >= other.End)
}

// Len is the span length in runes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Spans is the ordered output of a single stage.
type Spans []Span

// Detector is implemented by every span producer.
type Detector interface {
	Source() Source
	Detect(ctx context.Context, text string) (Spans, error)
}
