package detection

import (
	"testing"

	"github.com/NeuralTrust/TrustMask/pkg/pii_entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_SplitPhone(t *testing.T) {
	text := "0532 123 45 67"
	spans := Spans{
		{EntityType: pii_entities.PhoneNumber, Start: 9, End: 14, Text: "45 67", Confidence: 0.9},
		{EntityType: pii_entities.PhoneNumber, Start: 0, End: 8, Text: "0532 123", Confidence: 0.9},
	}

	merged := Merge(text, spans)
	require.Len(t, merged, 1)
	assert.Equal(t, 0, merged[0].Start)
	assert.Equal(t, 14, merged[0].End)
	assert.Equal(t, text, merged[0].Text)
	assert.Equal(t, 0.9, merged[0].Confidence)

	// input untouched
	assert.Equal(t, 9, spans[0].Start)
	assert.Equal(t, "0532 123", spans[1].Text)
}

func TestMerge_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		spans  Spans
		expect int
	}{
		{
			name: "dash filler",
			text: "1234-5678",
			spans: Spans{
				{EntityType: pii_entities.CreditCard, Start: 0, End: 4},
				{EntityType: pii_entities.CreditCard, Start: 5, End: 9},
			},
			expect: 1,
		},
		{
			name: "gap too wide",
			text: "1234   5678",
			spans: Spans{
				{EntityType: pii_entities.CreditCard, Start: 0, End: 4},
				{EntityType: pii_entities.CreditCard, Start: 7, End: 11},
			},
			expect: 2,
		},
		{
			name: "non filler gap",
			text: "1234,5678",
			spans: Spans{
				{EntityType: pii_entities.CreditCard, Start: 0, End: 4},
				{EntityType: pii_entities.CreditCard, Start: 5, End: 9},
			},
			expect: 2,
		},
		{
			name: "different types",
			text: "1234 5678",
			spans: Spans{
				{EntityType: pii_entities.CreditCard, Start: 0, End: 4},
				{EntityType: pii_entities.PhoneNumber, Start: 5, End: 9},
			},
			expect: 2,
		},
		{
			name: "adjacent",
			text: "ab",
			spans: Spans{
				{EntityType: pii_entities.Person, Start: 0, End: 1},
				{EntityType: pii_entities.Person, Start: 1, End: 2},
			},
			expect: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Merge(tt.text, tt.spans), tt.expect)
		})
	}
}

func TestMerge_ContainedSpanDoesNotShrink(t *testing.T) {
	text := "Ahmet Yılmaz"
	merged := Merge(text, Spans{
		{EntityType: pii_entities.Person, Start: 0, End: 12},
		{EntityType: pii_entities.Person, Start: 6, End: 12},
	})
	require.Len(t, merged, 1)
	assert.Equal(t, 12, merged[0].End)
	assert.Equal(t, "Ahmet Yılmaz", merged[0].Text)
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge("text", nil))
}
