// Package isbn normalizes and validates ISBN-10 and ISBN-13 identifiers.
package isbn

import (
	"strings"
	"unicode"
)

// Normalize removes hyphens, spaces, and common prefixes from an ISBN.
func Normalize(value string) string {
	value = strings.TrimPrefix(strings.ToUpper(value), "ISBN:")
	value = strings.TrimPrefix(value, "ISBN")
	value = strings.TrimSpace(value)

	// Keep only digits and X (for ISBN-10 checksum)
	var result strings.Builder
	for _, r := range value {
		if unicode.IsDigit(r) || r == 'X' || r == 'x' {
			result.WriteRune(r)
		}
	}
	return strings.ToUpper(result.String())
}

// IsValid reports whether the value is a valid ISBN-10 or ISBN-13 after
// normalization.
func IsValid(value string) bool {
	normalized := Normalize(value)
	switch len(normalized) {
	case 10:
		return ValidateISBN10(normalized)
	case 13:
		return ValidateISBN13(normalized)
	}
	return false
}

// ValidateISBN10 validates an ISBN-10 checksum.
// ISBN-10 uses modulo 11 with weights 10,9,8,7,6,5,4,3,2,1.
func ValidateISBN10(isbn string) bool {
	if len(isbn) != 10 {
		return false
	}

	var sum int
	for i, r := range isbn {
		var digit int
		switch {
		case r == 'X' || r == 'x':
			if i != 9 {
				return false // X only valid as last digit
			}
			digit = 10
		case unicode.IsDigit(r):
			digit = int(r - '0')
		default:
			return false
		}
		sum += digit * (10 - i)
	}

	return sum%11 == 0
}

// ValidateISBN13 validates an ISBN-13 checksum.
// ISBN-13 uses modulo 10 with alternating weights 1 and 3.
func ValidateISBN13(isbn string) bool {
	if len(isbn) != 13 {
		return false
	}

	var sum int
	for i, r := range isbn {
		if !unicode.IsDigit(r) {
			return false
		}
		digit := int(r - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}

	return sum%10 == 0
}
