// Package utils provides common formatting helpers for the CIM
// Automation Platform.
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCurrency formats a dollar amount in the platform's compact
// notation. The thresholds and precision are a fixed convention that
// must be reproduced exactly across documents:
//
//	>= 1e9 → "$X.XB"
//	>= 1e6 → "$X.XM"
//	>= 1e3 → "$X.XK"
//	else   → "$X"
func FormatCurrency(value float64) string {
	switch {
	case value >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", value/1_000_000_000)
	case value >= 1_000_000:
		return fmt.Sprintf("$%.1fM", value/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("$%.1fK", value/1_000)
	default:
		return fmt.Sprintf("$%.0f", value)
	}
}

// FormatCurrencyCell formats a dollar amount for table cells, where the
// thousands tier drops its decimal ("$480K" rather than "$480.0K").
func FormatCurrencyCell(value float64) string {
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("$%.1fM", value/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("$%.0fK", value/1_000)
	default:
		return fmt.Sprintf("$%.0f", value)
	}
}

// FormatPercent formats a percentage with one decimal place.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// FormatMillions formats a dollar amount as millions with one decimal,
// the convention used inside narrative text ("$3.2M").
func FormatMillions(value float64) string {
	return fmt.Sprintf("$%.1fM", value/1_000_000)
}

// ParseCurrency parses a string produced by FormatCurrency back into a
// dollar amount. It only recognizes the four policy shapes; anything
// else returns an error.
func ParseCurrency(s string) (float64, error) {
	if !strings.HasPrefix(s, "$") {
		return 0, fmt.Errorf("parse currency %q: missing $ prefix", s)
	}
	body := strings.TrimPrefix(s, "$")

	mult := 1.0
	switch {
	case strings.HasSuffix(body, "B"):
		mult = 1_000_000_000
		body = strings.TrimSuffix(body, "B")
	case strings.HasSuffix(body, "M"):
		mult = 1_000_000
		body = strings.TrimSuffix(body, "M")
	case strings.HasSuffix(body, "K"):
		mult = 1_000
		body = strings.TrimSuffix(body, "K")
	}
	body = strings.TrimSpace(body)

	v, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return 0, fmt.Errorf("parse currency %q: %w", s, err)
	}
	return v * mult, nil
}
