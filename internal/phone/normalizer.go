// Package phone canonicalizes raw phone values into a consistent digit
// representation and derives the lookup key used for duplicate matching.
package phone

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultMinDigits = 10
	DefaultMaxDigits = 15
	DefaultKeyLength = 10
)

// Normalizer holds the numbering-plan bounds. KeyLength is the suffix length
// used by LookupKey; 10 matches national numbers in 10-digit plans, callers
// with a different plan set their own.
type Normalizer struct {
	MinDigits int
	MaxDigits int
	KeyLength int
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		MinDigits: DefaultMinDigits,
		MaxDigits: DefaultMaxDigits,
		KeyLength: DefaultKeyLength,
	}
}

// Normalize strips every non-digit character, keeping a leading "+" when the
// input had one. A bare international prefix "00" on an overlong number is
// dropped.
func (n *Normalizer) Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	hasPlus := strings.HasPrefix(raw, "+")
	digits := digitsOf(raw)

	if !hasPlus && strings.HasPrefix(digits, "00") && len(digits) > 12 {
		digits = digits[2:]
	}

	if hasPlus {
		return "+" + digits
	}
	return digits
}

// NormalizeValue accepts raw cell values as parsers deliver them. Numeric
// cells are stringified through integer formatting so a number typed into a
// spreadsheet can never surface as scientific notation.
func (n *Normalizer) NormalizeValue(value any) string {
	return n.Normalize(StringifyCell(value))
}

// StringifyCell converts a raw cell value to a plain string without ever
// producing an exponent or a decimal point for numeric input.
func StringifyCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(math.Round(float64(v)), 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Validate reports the first reason a raw phone value is unusable, or nil.
func (n *Normalizer) Validate(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("phone number is required")
	}

	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return fmt.Errorf("phone number contains letters")
		}
	}

	digits := digitsOf(n.Normalize(raw))
	if len(digits) < n.MinDigits {
		return fmt.Errorf("phone number too short (%d digits)", len(digits))
	}
	if len(digits) > n.MaxDigits {
		return fmt.Errorf("phone number too long (%d digits)", len(digits))
	}
	if strings.Trim(digits, "0") == "" {
		return fmt.Errorf("phone number cannot be all zeros")
	}

	return nil
}

// ApplyCountryCode prefixes raw with the given country code. Numbers that
// already carry a "+" are returned unchanged; a bare national-length number
// gets the code prepended; a number that already starts with the code only
// gains the "+".
func (n *Normalizer) ApplyCountryCode(raw, countryCode string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "+") {
		return raw
	}

	code := digitsOf(countryCode)
	digits := digitsOf(raw)

	if len(digits) == n.KeyLength {
		return "+" + code + digits
	}
	if code != "" && strings.HasPrefix(digits, code) && len(digits)-len(code) == n.KeyLength {
		return "+" + digits
	}
	return "+" + digits
}

// LookupKey returns the last KeyLength digits of the normalized number, or
// everything when shorter. Country-code variants of one subscriber number
// collapse onto the same key.
func (n *Normalizer) LookupKey(raw string) string {
	digits := digitsOf(n.Normalize(raw))
	if len(digits) <= n.KeyLength {
		return digits
	}
	return digits[len(digits)-n.KeyLength:]
}

func digitsOf(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= '0' && ch <= '9' {
			out = append(out, ch)
		}
	}
	return string(out)
}
