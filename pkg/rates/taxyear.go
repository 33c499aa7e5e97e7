package rates

import (
	"regexp"
	"strconv"
)

// taxYearPattern matches the UK tax-year form "YYYY-YY".
var taxYearPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// TaxYearFormatValid reports whether the string has the YYYY-YY shape.
func TaxYearFormatValid(taxYear string) bool {
	return taxYearPattern.MatchString(taxYear)
}

// TaxYearConsecutive reports whether the second pair of digits equals
// (first year + 1) mod 100, so "2025-26" is valid and so is the
// century wraparound "2099-00". The format must already have been
// checked with TaxYearFormatValid.
func TaxYearConsecutive(taxYear string) bool {
	firstYear, err := strconv.Atoi(taxYear[:4])
	if err != nil {
		return false
	}
	secondYear, err := strconv.Atoi(taxYear[5:])
	if err != nil {
		return false
	}
	return secondYear == (firstYear+1)%100
}

// ExpectedSecondYear returns (first year + 1) mod 100 for a tax-year
// string that has already passed the format check.
func ExpectedSecondYear(taxYear string) int {
	firstYear, _ := strconv.Atoi(taxYear[:4])
	return (firstYear + 1) % 100
}
