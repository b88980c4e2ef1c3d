// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatKina formats a kina amount with human-readable suffixes.
// e.g., 1234 -> "K1.2K", 1234567 -> "K1.2M", 1234567890 -> "K1.2B"
func FormatKina(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("K%.1fB", float64(n)/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("K%.1fM", float64(n)/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("K%.1fK", float64(n)/1_000)
	default:
		return "K" + strconv.FormatInt(n, 10)
	}
}

// FormatBillions formats a kina amount in billions with two decimals.
// e.g., 3200000000 -> "K3.20B"
func FormatBillions(n int64) string {
	return fmt.Sprintf("K%.2fB", float64(n)/1_000_000_000)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a percentage value with one decimal.
// e.g., 15.84 -> "15.8%"
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatGrowth formats a year-over-year percentage with explicit sign,
// or "n/a" when the baseline year had no allocation.
func FormatGrowth(pct float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", pct)
}

// FormatPerCapita formats a per-person kina amount, or "n/a" when no
// population figure exists.
func FormatPerCapita(v float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("K%s", FormatNumber(int64(v+0.5)))
}

// FormatDelta formats a kina difference with sign.
func FormatDelta(current, previous int64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatKina(delta)
	}
	return "-" + FormatKina(-delta)
}
