package detection

import (
	"context"
	"testing"

	"github.com/NeuralTrust/TrustMask/pkg/pii_entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findByType(spans Spans, entity pii_entities.Entity) []Span {
	var out []Span
	for _, s := range spans {
		if s.EntityType == entity {
			out = append(out, s)
		}
	}
	return out
}

func TestStructuredDetector_TCAndPhone(t *testing.T) {
	text := "TC: 12345678950 telefon: 0532 123 45 67"
	spans, err := NewStructuredDetector().Detect(context.Background(), text)
	require.NoError(t, err)

	tc := findByType(spans, pii_entities.TCKimlik)
	require.Len(t, tc, 1)
	assert.Equal(t, 4, tc[0].Start)
	assert.Equal(t, 15, tc[0].End)
	assert.Equal(t, "12345678950", tc[0].Text)
	assert.Equal(t, 0.95, tc[0].Confidence)

	phone := findByType(spans, pii_entities.PhoneNumber)
	require.Len(t, phone, 1)
	assert.Equal(t, 25, phone[0].Start)
	assert.Equal(t, 39, phone[0].End)
	assert.Equal(t, "0532 123 45 67", phone[0].Text)
	assert.Equal(t, 0.9, phone[0].Confidence)
}

func TestStructuredDetector_DropsInvalidChecksums(t *testing.T) {
	spans, err := NewStructuredDetector().Detect(context.Background(), "TC: 12345678951 kart: 4111 1111 1111 1112")
	require.NoError(t, err)
	assert.Empty(t, findByType(spans, pii_entities.TCKimlik))
	assert.Empty(t, findByType(spans, pii_entities.CreditCard))
}

func TestStructuredDetector_IgnoresDigitsInsideLongerNumbers(t *testing.T) {
	spans, err := NewStructuredDetector().Detect(context.Background(), "ref 1234567895099")
	require.NoError(t, err)
	assert.Empty(t, findByType(spans, pii_entities.TCKimlik))
}

func TestStructuredDetector_Email(t *testing.T) {
	spans, err := NewStructuredDetector().Detect(context.Background(), "Mail: ahmet@example.com")
	require.NoError(t, err)
	emails := findByType(spans, pii_entities.Email)
	require.Len(t, emails, 1)
	assert.Equal(t, 6, emails[0].Start)
	assert.Equal(t, 23, emails[0].End)
}

func TestStructuredDetector_CreditCard(t *testing.T) {
	spans, err := NewStructuredDetector().Detect(context.Background(), "Kart: 4111 1111 1111 1111")
	require.NoError(t, err)
	cards := findByType(spans, pii_entities.CreditCard)
	require.Len(t, cards, 1)
	assert.Equal(t, "4111 1111 1111 1111", cards[0].Text)
	assert.Equal(t, 6, cards[0].Start)
}

func TestStructuredDetector_RuneOffsets(t *testing.T) {
	text := "Şişli'de oturan Ayşe: ayse@örnek.com ayse@example.com"
	spans, err := NewStructuredDetector().Detect(context.Background(), text)
	require.NoError(t, err)

	emails := findByType(spans, pii_entities.Email)
	require.NotEmpty(t, emails)
	runes := []rune(text)
	for _, e := range emails {
		assert.Equal(t, e.Text, string(runes[e.Start:e.End]))
	}
	last := emails[len(emails)-1]
	assert.Equal(t, "ayse@example.com", last.Text)
}

func TestMedicalDetector(t *testing.T) {
	text := "Hasta DİYABET ve migren tanılı, Parol kullanıyor. Kanserojen değil."
	spans, err := NewMedicalDetector().Detect(context.Background(), text)
	require.NoError(t, err)

	conditions := findByType(spans, pii_entities.MedicalCondition)
	require.Len(t, conditions, 2)
	assert.Equal(t, "DİYABET", conditions[0].Text)
	assert.Equal(t, "migren", conditions[1].Text)

	medications := findByType(spans, pii_entities.Medication)
	require.Len(t, medications, 1)
	assert.Equal(t, "Parol", medications[0].Text)
	assert.Equal(t, SourceMedical, NewMedicalDetector().Source())
}

func TestStructuredDetector_InvalidUTF8Offsets(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start int
		end   int
	}{
		{"stray continuation byte after match", "12345678950\x80 son", 0, 11},
		{"stray continuation byte before match", "\x80\x80 12345678950", 3, 14},
		{"truncated multi-byte rune before match", "\xc5 ş 12345678950", 4, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, err := NewStructuredDetector().Detect(context.Background(), tt.text)
			require.NoError(t, err)
			tc := findByType(spans, pii_entities.TCKimlik)
			require.Len(t, tc, 1)
			assert.Equal(t, tt.start, tc[0].Start)
			assert.Equal(t, tt.end, tc[0].End)
			assert.Equal(t, "12345678950", string([]rune(tt.text)[tc[0].Start:tc[0].End]))
		})
	}
}
