// Package masking renders a redacted copy of a text from its final,
// non-overlapping detection set. Each entity type has its own rule; most
// keep a few characters and the formatting of the value so the result
// stays readable.
package masking

import (
	"sort"
	"strings"
	"unicode"

	"github.com/NeuralTrust/TrustMask/pkg/detection"
	"github.com/NeuralTrust/TrustMask/pkg/pii_entities"
)

const DefaultMaskChar = '*'

// Rule turns the covered runes of one span into their replacement.
type Rule func(value []rune) string

var entityRules = map[pii_entities.Entity]Rule{
	pii_entities.TCKimlik:         keepEdges(2, 2),
	pii_entities.PhoneNumber:      maskDigits(3, 2),
	pii_entities.Birthday:         placeholder(pii_entities.BirthdayPlaceholder),
	pii_entities.Email:            maskEmail,
	pii_entities.CreditCard:       maskDigits(0, 4),
	pii_entities.IBAN:             keepEdges(4, 4),
	pii_entities.Person:           maskPerson,
	pii_entities.LocationName:     keepPrefix(2, 3),
	pii_entities.AddressComponent: keepPrefix(2, 3),
	pii_entities.MedicalCondition: placeholder(pii_entities.MedicalPlaceholder),
	pii_entities.Medication:       placeholder(pii_entities.MedicalPlaceholder),
}

// RuleFor returns the masking rule of an entity type. Types without a
// dedicated rule are masked entirely.
func RuleFor(entity pii_entities.Entity) Rule {
	if rule, ok := entityRules[entity]; ok {
		return rule
	}
	return maskAll
}

// Mask replaces every span of text by its masked form. Spans are applied
// by descending start so replacements that change length never move a span
// still to be applied. Spans with offsets outside the text are skipped.
func Mask(text string, spans detection.Spans) string {
	if len(spans) == 0 {
		return text
	}
	ordered := make(detection.Spans, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})

	result := []rune(text)
	for _, span := range ordered {
		if span.Start < 0 || span.End > len(result) || span.Start >= span.End {
			continue
		}
		replacement := []rune(RuleFor(span.EntityType)(result[span.Start:span.End]))
		tail := append([]rune(nil), result[span.End:]...)
		result = append(append(result[:span.Start], replacement...), tail...)
	}
	return string(result)
}

func stars(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(string(DefaultMaskChar), n)
}

func maskAll(value []rune) string {
	return stars(len(value))
}

func placeholder(token string) Rule {
	return func([]rune) string { return token }
}

// keepEdges keeps head leading and tail trailing runes. Values too short to
// hide anything are masked entirely.
func keepEdges(head, tail int) Rule {
	return func(value []rune) string {
		if len(value) <= head+tail {
			return maskAll(value)
		}
		return string(value[:head]) + stars(len(value)-head-tail) + string(value[len(value)-tail:])
	}
}

// keepPrefix keeps head leading runes of values longer than minLen.
func keepPrefix(head, minLen int) Rule {
	return func(value []rune) string {
		if len(value) <= minLen {
			return maskAll(value)
		}
		return string(value[:head]) + stars(len(value)-head)
	}
}

// maskDigits keeps the first head and last tail digits, masks the others
// and leaves separators where they are.
func maskDigits(head, tail int) Rule {
	return func(value []rune) string {
		total := 0
		for _, r := range value {
			if unicode.IsDigit(r) {
				total++
			}
		}
		if total <= head+tail {
			return maskAll(value)
		}

		var b strings.Builder
		seen := 0
		for _, r := range value {
			if !unicode.IsDigit(r) {
				b.WriteRune(r)
				continue
			}
			if seen < head || seen >= total-tail {
				b.WriteRune(r)
			} else {
				b.WriteRune(DefaultMaskChar)
			}
			seen++
		}
		return b.String()
	}
}

func maskEmail(value []rune) string {
	s := string(value)
	at := strings.IndexByte(s, '@')
	if at < 0 {
		return maskAll(value)
	}
	local := []rune(s[:at])
	if len(local) <= 1 {
		return stars(len(local)) + s[at:]
	}
	return string(local[0]) + stars(len(local)-1) + s[at:]
}

func maskPerson(value []rune) string {
	tokens := strings.Fields(string(value))
	for i, token := range tokens {
		runes := []rune(token)
		if len(runes) > 2 {
			tokens[i] = string(runes[0]) + stars(len(runes)-2) + string(runes[len(runes)-1])
			continue
		}
		tokens[i] = stars(len(runes))
	}
	return strings.Join(tokens, " ")
}
