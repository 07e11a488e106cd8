// Package currencyutils provides the fixed-point money operations used by planning and reporting.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ScaleMinorUnits turns a raw minor-unit integer into a decimal amount, e.g.
// ScaleMinorUnits(12345, 2) is 123.45 and ScaleMinorUnits(500, 0) is 500.
func ScaleMinorUnits(raw int64, decimalPlaces int32) decimal.Decimal {
	return decimal.New(raw, -decimalPlaces)
}

// ToMinorUnits is the inverse of ScaleMinorUnits. It fails when amount has more
// fractional digits than decimalPlaces allows.
func ToMinorUnits(amount decimal.Decimal, decimalPlaces int32) (int64, error) {
	shifted := amount.Shift(decimalPlaces)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", amount.String(), decimalPlaces)
	}
	return shifted.IntPart(), nil
}

// ParseAmount parses a plain decimal string such as "1234.56" or "1'234.56".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(amountStr)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	cleaned = strings.ReplaceAll(cleaned, "'", "")
	cleaned = strings.ReplaceAll(cleaned, "_", "")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// FormatAmount formats an amount with exactly two decimal places, without thousands separators.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// IsPositive checks if an amount is strictly positive
func IsPositive(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}

// Sum adds amounts exactly.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
