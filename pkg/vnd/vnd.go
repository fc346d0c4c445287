// Package vnd provides helpers for Vietnamese dong amounts.
// VND has no minor unit in practice; amounts are whole dong, but values are
// carried as decimals so imported data with fractional dong is not silently
// truncated.
package vnd

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse parses a human-entered VND amount. It accepts both plain numbers and
// amounts with Vietnamese thousands separators ("1.500.000" or "1,500,000").
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}

	// Vietnamese locale uses "." as the thousands separator and "," as the
	// decimal mark. Disambiguate by the position of the last separator: a
	// group of exactly three digits after it means grouping.
	cleaned := s
	if strings.ContainsAny(s, ".,") {
		lastDot := strings.LastIndexAny(s, ".,")
		tail := s[lastDot+1:]
		if len(tail) == 3 && !strings.ContainsAny(tail, ".,") {
			// Grouped notation: strip all separators
			cleaned = strings.NewReplacer(".", "", ",", "").Replace(s)
		} else {
			// Decimal notation: strip group separators, normalize the mark
			head := strings.NewReplacer(".", "", ",", "").Replace(s[:lastDot])
			cleaned = head + "." + tail
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// Format renders an amount with Vietnamese thousands grouping: 1500000 → "1.500.000".
// Fractional dong is rendered with a comma decimal mark.
func Format(d decimal.Decimal) string {
	s := d.String()

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

// FormatWithUnit renders an amount followed by the currency symbol: "1.500.000 ₫".
func FormatWithUnit(d decimal.Decimal) string {
	return Format(d) + " ₫"
}
