// Package validate gates persistence of merged benefit rates. The
// checks are pure and accumulate every finding rather than stopping at
// the first, so one run surfaces all problems: tax-year consistency,
// key-set stability against the previous store, positivity, and
// bounded drift per value.
package validate

import (
	"fmt"
	"sort"

	"github.com/openbenefits/ratesync/pkg/rates"
)

// Drift thresholds, in percent relative to the previous value.
const (
	// WarnDriftPercent is the drift above which a value draws a warning.
	WarnDriftPercent = 10
	// MaxDriftPercent is the drift above which a value is rejected.
	MaxDriftPercent = 50
)

// Result is the outcome of one validation run. Warnings never affect
// Valid; only errors block persistence.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Check validates merged rates against the previous store and the tax
// year they claim to describe.
func Check(newSet, oldSet *rates.RateSet, taxYear string) Result {
	var result Result

	checkTaxYear(&result, taxYear)

	newFlat := newSet.Flatten()
	oldFlat := oldSet.Flatten()

	for _, path := range sortedPaths(oldFlat) {
		if _, ok := newFlat[path]; !ok {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Missing key: %s (present in existing rates, absent after merge)", path))
		}
	}
	for _, path := range sortedPaths(newFlat) {
		if _, ok := oldFlat[path]; !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("New key: %s = %v", path, newFlat[path]))
		}
	}

	for _, path := range sortedPaths(newFlat) {
		checkValue(&result, path, newFlat[path], oldFlat)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func checkTaxYear(result *Result, taxYear string) {
	if !rates.TaxYearFormatValid(taxYear) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("invalid tax_year format: %q (expected YYYY-YY)", taxYear))
		return
	}
	if !rates.TaxYearConsecutive(taxYear) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("tax_year years don't match: %q (expected second year %02d)",
				taxYear, rates.ExpectedSecondYear(taxYear)))
	}
}

func checkValue(result *Result, path string, value float64, oldFlat map[string]float64) {
	if value <= 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s: value %v must be positive", path, value))
	}

	old, ok := oldFlat[path]
	if !ok || old <= 0 {
		return
	}

	drift := abs(value-old) / old * 100
	switch {
	case drift > MaxDriftPercent:
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s: changed by %.1f%%, exceeds 50%% threshold (%v -> %v)", path, drift, old, value))
	case drift > WarnDriftPercent:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: changed by %.1f%% (%v -> %v)", path, drift, old, value))
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sortedPaths(flat map[string]float64) []string {
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
