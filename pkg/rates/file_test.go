package rates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "benefit-rates.json")

	rs := NewRateSet()
	rs.SetGroup(BenefitCarersAllowance, Group{"weekly": 83.3, "earnings_limit_weekly": 196})
	rs.SetRootValue("state_pension_full_new_weekly", 230.25)

	file := &File{
		TaxYear:     "2025-26",
		LastUpdated: "2025-04-07",
		Source:      "gov.uk",
		Rates:       rs,
	}
	require.NoError(t, file.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2025-26", loaded.TaxYear)
	assert.Equal(t, "gov.uk", loaded.Source)
	assert.Equal(t, rs.Flatten(), loaded.Rates.Flatten())
}

func TestFileSaveFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "benefit-rates.json")

	file := &File{
		TaxYear: "2025-26",
		Source:  "gov.uk",
		Rates:   NewRateSet(),
	}
	require.NoError(t, file.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasSuffix(text, "\n"), "file must end with a newline")
	assert.Contains(t, text, "  \"tax_year\": \"2025-26\"", "file must use two-space indentation")
}

func TestFileSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "benefit-rates.json")

	file := &File{TaxYear: "2025-26", Rates: NewRateSet()}
	require.NoError(t, file.Save(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "benefit-rates.json", entries[0].Name())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
