// Package money implements integer-paise arithmetic and display formatting.
// All stored monetary values are integer counts of paise (1/100 rupee);
// floats only appear at the form-input and display edges.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// en-IN so rupee amounts group the Indian way: ₹1,23,456.
var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatPaise renders a paise amount as a rupee string with no fractional
// digits, rounding to the nearest rupee (ties away from zero). Fractional
// paise are lossy here on purpose; storage stays exact.
func FormatPaise(paise int64) string {
	return inr.Sprintf("₹%v", number.Decimal(RoundToRupees(paise)))
}

// FormatPaiseRs renders like FormatPaise but with a "Rs." prefix instead
// of the rupee symbol, for outputs whose font carries no ₹ glyph (the PDF
// receipt's built-in helvetica, plain thermal printers).
func FormatPaiseRs(paise int64) string {
	return inr.Sprintf("Rs. %v", number.Decimal(RoundToRupees(paise)))
}

// RoundToRupees converts paise to whole rupees, nearest, ties away from zero.
func RoundToRupees(paise int64) int64 {
	if paise < 0 {
		return (paise - 50) / 100
	}
	return (paise + 50) / 100
}

// RupeesToPaise converts a user-entered decimal rupee amount to paise,
// rounding to the nearest paisa. The caller validates that the input is
// finite and non-negative; NaN/Inf propagate as garbage by design.
func RupeesToPaise(rupees float64) int64 {
	return int64(math.Round(rupees * 100))
}

// ParseRupees parses a typed rupee amount ("149", "149.50", "₹1,499") into
// paise without going through a float. Negative amounts are rejected.
func ParseRupees(s string) (int64, error) {
	cleaned := strings.NewReplacer("₹", "", ",", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0, fmt.Errorf("money: empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("money: parse %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("money: negative amount %q", s)
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
