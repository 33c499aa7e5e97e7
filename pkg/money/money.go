// Package money extracts currency amounts from GOV.UK prose and HTML
// fragments. Amounts are pound-sterling marked (£ sigil, optional
// thousands separators, up to two decimal places).
package money

import (
	"regexp"
	"strconv"
	"strings"
)

// amountPattern matches a currency-marked amount: a £ sigil followed by
// digits with optional comma thousands separators and up to two decimals.
var amountPattern = regexp.MustCompile(`£(\d[\d,]*(?:\.\d{1,2})?)`)

// FirstAmount returns the numeric value of the first currency-marked
// amount in text. The second return value reports whether an amount
// was found; absence is not an error.
func FirstAmount(text string) (float64, bool) {
	match := amountPattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	return parseAmount(match[1])
}

// AllAmounts returns every currency-marked amount in text, in document
// order. A fragment with no amounts yields an empty slice.
func AllAmounts(text string) []float64 {
	matches := amountPattern.FindAllStringSubmatch(text, -1)
	amounts := make([]float64, 0, len(matches))
	for _, match := range matches {
		if value, ok := parseAmount(match[1]); ok {
			amounts = append(amounts, value)
		}
	}
	return amounts
}

// parseAmount strips thousands separators and parses the remainder.
func parseAmount(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
