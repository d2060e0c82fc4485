// Package money provides parsing and validation helpers for monetary
// amounts and percentage values. Amounts are held in cents (int64) to keep
// arithmetic exact; formatting for display is a front-end concern and does
// not exist here.
package money

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/safra-cheia/budget-backend/internal/apperr"
)

// Cents is a monetary amount in hundredths of the currency unit.
// The sign is unconstrained: refunds and corrections are negative entries.
type Cents int64

// ParseAmount converts user-facing decimal text to cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an
// optional leading minus, and performs half-up rounding on the third
// decimal place. Empty or malformed input is rejected.
func ParseAmount(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperr.Invalid("amount", "amount is required")
	}
	s = strings.ReplaceAll(s, ",", ".")

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, apperr.Invalid("amount", "not a valid decimal number")
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return 0, apperr.Invalid("amount", "not a valid decimal number")
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, apperr.Invalid("amount", "not a valid decimal number")
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, apperr.Invalid("amount", "not a valid decimal number")
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, apperr.Invalid("amount", "amount out of range")
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, apperr.Invalid("amount", "amount out of range")
	}

	// First two fractional digits are cents; half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if negative {
		cents = -cents
	}
	return Cents(cents), nil
}

// ValidatePercent rejects progress values outside [0, 100]. Out-of-range
// input is an error, never silently clamped: the caller's prior state must
// stay untouched.
func ValidatePercent(v int) error {
	if v < 0 || v > 100 {
		return apperr.Invalid("progress", "must be between 0 and 100")
	}
	return nil
}
