package validate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbenefits/ratesync/pkg/rates"
)

func baseSet() *rates.RateSet {
	rs := rates.NewRateSet()
	rs.SetGroup(rates.BenefitAttendanceAllowance, rates.Group{
		"lower_weekly":  73.9,
		"higher_weekly": 110.4,
	})
	return rs
}

func withLower(value float64) *rates.RateSet {
	rs := baseSet()
	group, _ := rs.Group(rates.BenefitAttendanceAllowance)
	group["lower_weekly"] = value
	return rs
}

// driftSets builds an old store with a 100.0 leaf and a new store with
// the given value, so the drift percentage reads directly off it.
func driftSets(newValue float64) (newSet, oldSet *rates.RateSet) {
	oldSet = rates.NewRateSet()
	oldSet.SetGroup(rates.BenefitCarersAllowance, rates.Group{"weekly": 100.0})
	newSet = rates.NewRateSet()
	newSet.SetGroup(rates.BenefitCarersAllowance, rates.Group{"weekly": newValue})
	return newSet, oldSet
}

func TestCheckIdentityIsValid(t *testing.T) {
	result := Check(baseSet(), baseSet(), "2025-26")
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestCheckDriftBands(t *testing.T) {
	tests := []struct {
		name         string
		newValue     float64
		wantValid    bool
		wantErrors   int
		wantWarnings int
	}{
		{"small drift passes silently", 109, true, 0, 0},
		{"moderate drift warns", 130, true, 0, 1},
		{"large but bounded drift warns", 149, true, 0, 1},
		{"excessive drift fails", 151, false, 1, 0},
		{"downward drift counts too", 40, false, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newSet, oldSet := driftSets(tt.newValue)
			result := Check(newSet, oldSet, "2025-26")
			assert.Equal(t, tt.wantValid, result.Valid)
			require.Len(t, result.Errors, tt.wantErrors)
			require.Len(t, result.Warnings, tt.wantWarnings)
			if tt.wantErrors == 1 {
				assert.Contains(t, result.Errors[0], "exceeds 50%")
			}
			if tt.wantWarnings == 1 {
				assert.Contains(t, result.Warnings[0], "changed by")
			}
		})
	}
}

func TestCheckNonPositiveValues(t *testing.T) {
	for _, value := range []float64{0, -5} {
		t.Run(fmt.Sprintf("value %v", value), func(t *testing.T) {
			result := Check(withLower(value), baseSet(), "2025-26")
			assert.False(t, result.Valid)

			found := false
			for _, e := range result.Errors {
				if strings.Contains(e, "must be positive") {
					found = true
				}
			}
			assert.True(t, found, "expected a 'must be positive' error, got %v", result.Errors)
		})
	}
}

func TestCheckMissingKeyIsError(t *testing.T) {
	stripped := baseSet()
	group, _ := stripped.Group(rates.BenefitAttendanceAllowance)
	delete(group, "higher_weekly")

	result := Check(stripped, baseSet(), "2025-26")
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Missing key")
	assert.Contains(t, result.Errors[0], "attendance_allowance.higher_weekly")
}

func TestCheckNewKeyIsWarningOnly(t *testing.T) {
	extended := baseSet()
	group, _ := extended.Group(rates.BenefitAttendanceAllowance)
	group["middle_weekly"] = 90.0

	result := Check(extended, baseSet(), "2025-26")
	assert.True(t, result.Valid, "a new key must not invalidate the result")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "New key")
}

func TestCheckTaxYear(t *testing.T) {
	tests := []struct {
		taxYear  string
		valid    bool
		errorHas string
	}{
		{"2025-26", true, ""},
		{"2099-00", true, ""}, // century wraparound
		{"2025", false, "tax_year format"},
		{"25-26", false, "tax_year format"},
		{"2025-27", false, "don't match"},
		{"2025-25", false, "don't match"},
	}

	for _, tt := range tests {
		t.Run(tt.taxYear, func(t *testing.T) {
			result := Check(baseSet(), baseSet(), tt.taxYear)
			assert.Equal(t, tt.valid, result.Valid)
			if tt.errorHas != "" {
				require.NotEmpty(t, result.Errors)
				assert.Contains(t, result.Errors[0], tt.errorHas)
			}
		})
	}
}

func TestCheckEndToEndScenarios(t *testing.T) {
	// A store validated against itself is clean.
	result := Check(baseSet(), baseSet(), "2025-26")
	assert.Equal(t, Result{Valid: true}, result)

	// Raising lower_weekly to 200 is more than 50% drift.
	result = Check(withLower(200.0), baseSet(), "2025-26")
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "exceeds 50%")
}

func TestCheckRootLevelKeys(t *testing.T) {
	oldSet := baseSet()
	oldSet.SetRootValue("state_pension_full_new_weekly", 221.20)
	newSet := baseSet()
	newSet.SetRootValue("state_pension_full_new_weekly", 230.25)

	result := Check(newSet, oldSet, "2025-26")
	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings, "4% drift on a root key needs no finding")
}
