// Package pii_entities provides the PII entity types recognised in Turkish
// text together with their detection patterns, base confidences and
// checksum validators. The tables are built once at package init and are
// read-only afterwards, so they can be shared by concurrent detections.
package pii_entities

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Entity represents a type of sensitive data that can be detected
type Entity string

const (
	// Structured identifiers
	TCKimlik    Entity = "TC_KIMLIK"
	PhoneNumber Entity = "PHONE_NUMBER"
	Email       Entity = "EMAIL"
	IBAN        Entity = "IBAN"
	CreditCard  Entity = "CREDIT_CARD"
	Birthday    Entity = "BIRTHDAY"

	// Address and location
	AddressComponent Entity = "ADDRESS_COMPONENT"
	LocationName     Entity = "LOCATION_NAME"

	// Health data
	MedicalCondition Entity = "MEDICAL_CONDITION"
	Medication       Entity = "MEDICATION"

	// Named entities supplied by the external recognizer
	Person   Entity = "PERSON"
	Location Entity = "LOCATION"
)

// Base confidences.
const (
	ConfidenceHigh     = 0.95
	ConfidenceMedium   = 0.9
	ConfidenceLocation = 0.85
	ConfidencePerson   = 0.8
	ConfidenceLow      = 0.7
)

// Placeholders used by the masking rules that replace a value wholesale.
const (
	BirthdayPlaceholder = "[DOĞUM TARİHİ]"
	MedicalPlaceholder  = "[TIBBİ BİLGİ]"
)

// Validator accepts or rejects a candidate match independent of context.
type Validator func(candidate string) bool

// Pattern binds an entity to its expression, optional validator and base
// confidence.
type Pattern struct {
	Entity     Entity
	Regexp     *regexp.Regexp
	Validator  Validator
	Confidence float64
}

// Valid reports whether a candidate passes the pattern's validator (if any).
func (p Pattern) Valid(candidate string) bool {
	if p.Validator == nil {
		return true
	}
	return p.Validator(candidate)
}

var (
	tcKimlikPattern   = regexp.MustCompile(`[1-9][0-9]{10}`)
	creditCardPattern = regexp.MustCompile(`(?:\d{4}[\s\-]?){3}\d{4}`)
	emailPattern      = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	ibanPattern       = regexp.MustCompile(`TR\d{2}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{2}`)
	phonePattern      = regexp.MustCompile(`(?:\+90|0)?5\d{2}[\s\-]?\d{3}[\s\-]?\d{2}[\s\-]?\d{2}`)
	birthdayPattern   = regexp.MustCompile(`(?:\d{2}[./\-]\d{2}[./\-]\d{4}|\d{4}[./\-]\d{2}[./\-]\d{2})`)
)

var (
	addressMarkerPattern    = VocabularyRegexp(addressMarkerWords)
	medicalConditionPattern = VocabularyRegexp(medicalConditionWords)
	medicationPattern       = VocabularyRegexp(medicationWords)
)

var addressMarkerWords = []string{
	"Mahallesi", "Mahalle", "Mah.",
	"Sokağı", "Sokak", "Sok.",
	"Caddesi", "Cadde", "Cad.",
	"Bulvarı", "Bulvar", "Blv.",
	"Apartmanı", "Apartman", "Apt.",
	"No:", "Daire:", "Kat:",
}

var medicalConditionWords = []string{
	"depresyon", "anksiyete", "panik atak", "bipolar", "şizofreni", "ocd",
	"ptsd", "adhd", "otizm", "epilepsi", "migren", "astım", "diyabet",
	"hipertansiyon", "kalp krizi", "felç", "kanser", "tümör", "hepatit",
	"hiv", "aids",
}

var medicationWords = []string{
	"prozac", "xanax", "zoloft", "lexapro", "wellbutrin", "abilify",
	"risperdal", "lithium", "ritalin", "adderall", "insulin", "metformin",
	"aspirin", "parol", "nurofen", "voltaren", "majezik", "minoset",
	"cipralex", "sertralin", "venlafaksin",
}

// structuredPatterns is the regex stage table. Order mirrors the order in
// which the stage emits spans; the merger re-sorts anyway.
var structuredPatterns = []Pattern{
	{Entity: TCKimlik, Regexp: tcKimlikPattern, Validator: ValidateTCKimlik, Confidence: ConfidenceHigh},
	{Entity: CreditCard, Regexp: creditCardPattern, Validator: ValidateLuhn, Confidence: ConfidenceHigh},
	{Entity: Email, Regexp: emailPattern, Confidence: ConfidenceHigh},
	{Entity: IBAN, Regexp: ibanPattern, Confidence: ConfidenceMedium},
	{Entity: PhoneNumber, Regexp: phonePattern, Confidence: ConfidenceMedium},
	{Entity: Birthday, Regexp: birthdayPattern, Confidence: ConfidenceMedium},
}

var medicalPatterns = []Pattern{
	{Entity: MedicalCondition, Regexp: medicalConditionPattern, Confidence: ConfidenceMedium},
	{Entity: Medication, Regexp: medicationPattern, Confidence: ConfidenceMedium},
}

// addressMarker is not part of structuredPatterns. The gazetteer matcher
// runs it, so address components are counted as location detections.
var addressMarker = Pattern{
	Entity:     AddressComponent,
	Regexp:     addressMarkerPattern,
	Confidence: ConfidenceLow,
}

// StructuredPatterns returns the identifier, contact and financial patterns.
func StructuredPatterns() []Pattern {
	return append([]Pattern(nil), structuredPatterns...)
}

// MedicalPatterns returns the medical condition and medication vocabularies.
func MedicalPatterns() []Pattern {
	return append([]Pattern(nil), medicalPatterns...)
}

// AddressMarkerPattern returns the address component vocabulary pattern.
func AddressMarkerPattern() Pattern {
	return addressMarker
}

// AllEntities lists every entity in the closed set.
var AllEntities = []Entity{
	TCKimlik,
	PhoneNumber,
	Email,
	IBAN,
	CreditCard,
	Birthday,
	AddressComponent,
	LocationName,
	MedicalCondition,
	Medication,
	Person,
	Location,
}

// IsKnown reports whether e belongs to the closed entity set.
func IsKnown(e Entity) bool {
	for _, known := range AllEntities {
		if known == e {
			return true
		}
	}
	return false
}

// IsWordRune reports whether r is part of a word for boundary purposes.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// AtWordBoundary reports whether text[start:end] (byte offsets) does not
// extend a word on either side. A side only needs a boundary when the match
// itself begins (or ends) with a word rune, which is what \b means; Go's \b
// only understands ASCII so it cannot be used with Turkish letters.
func AtWordBoundary(text string, start, end int) bool {
	if start > 0 {
		first, _ := utf8.DecodeRuneInString(text[start:])
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if IsWordRune(first) && IsWordRune(prev) {
			return false
		}
	}
	if end < len(text) {
		last, _ := utf8.DecodeLastRuneInString(text[:end])
		next, _ := utf8.DecodeRuneInString(text[end:])
		if IsWordRune(last) && IsWordRune(next) {
			return false
		}
	}
	return true
}
