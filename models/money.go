package models

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var plainNumber = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// ParseCurrency converts a raw cell value into a 2-decimal currency amount.
//
// Cells are read with raw values, so numeric cells arrive as canonical
// dot-decimal strings and parse directly. Anything else is treated as
// Brazilian-formatted text: the "R$" symbol is stripped, thousands dots
// removed and the decimal comma converted, e.g. "R$ 1.234,56" -> 1234.56.
// Empty or unparseable input yields zero.
func ParseCurrency(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}

	if plainNumber.MatchString(raw) {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero
		}
		return d.Round(2)
	}

	cleaned := strings.ReplaceAll(raw, "R$", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = strings.TrimSpace(cleaned)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(2)
}

// ParseQuantity extracts a non-negative integer quantity. Fractions are
// truncated; failures and negative values become 0.
func ParseQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		if f < 0 {
			return 0
		}
		return int(f)
	}
	return 0
}
