package utils

import (
	"fmt"
	"math"
)

// AmountToCents converts a major-unit decimal amount (e.g. 19.99) to integer
// minor units, rounding to the nearest cent. All balance arithmetic happens in
// minor units; decimals only exist at the input boundary.
func AmountToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CentsToAmount converts integer minor units back to a major-unit decimal.
func CentsToAmount(cents int64) float64 {
	return float64(cents) / 100
}

// FormatAmount renders minor units as a two-decimal string for display.
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", CentsToAmount(cents))
}
