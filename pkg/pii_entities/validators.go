package pii_entities

import "strings"

const tcKimlikLength = 11

// ValidateTCKimlik checks the two check digits of a Turkish national ID.
// The candidate must be exactly eleven ASCII digits.
func ValidateTCKimlik(candidate string) bool {
	if len(candidate) != tcKimlikLength {
		return false
	}
	var digits [tcKimlikLength]int
	for i := 0; i < tcKimlikLength; i++ {
		c := candidate[i]
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
	}

	oddSum := digits[0] + digits[2] + digits[4] + digits[6] + digits[8]
	evenSum := digits[1] + digits[3] + digits[5] + digits[7]
	if mod10(oddSum*7-evenSum) != digits[9] {
		return false
	}

	total := 0
	for _, d := range digits[:10] {
		total += d
	}
	return total%10 == digits[10]
}

// ValidateLuhn strips every non-digit and runs the Luhn checksum over the
// remaining 13 to 19 digits.
func ValidateLuhn(candidate string) bool {
	digits := StripNonDigits(candidate)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// StripNonDigits keeps only ASCII digits.
func StripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// mod10 is the non-negative remainder; oddSum*7-evenSum may be negative.
func mod10(n int) int {
	return ((n % 10) + 10) % 10
}
