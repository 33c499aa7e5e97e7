package scrapers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbenefits/ratesync/internal/content"
)

func TestPensionCredit(t *testing.T) {
	client := newTestClient(t, map[string]content.Document{
		"pension-credit": guide(ratesPart(`
			<h2>Guarantee Credit</h2>
			<p>Your weekly income will be topped up to £227.10 if you're single.</p>
			<p>Your joint weekly income will be topped up to £346.60 if you have a partner.</p>
			<h2>Savings Credit</h2>
			<p>You could get up to £27.83 a week if you're single, or up to
			£31.14 a week if you have a partner.</p>
			<h2>Savings and investments</h2>
			<p>The first £10,000 of your capital is ignored.</p>`)),
	})

	scraper, _ := Lookup("pension_credit")
	parsed, err := scraper.Scrape(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"single_weekly":                    227.10,
		"couple_weekly":                    346.60,
		"savings_credit_single_max_weekly": 27.83,
		"savings_credit_couple_max_weekly": 31.14,
		"capital_disregard":                10000,
	}, parsed.Values)
}

func TestPensionCreditNoSavingsCreditSection(t *testing.T) {
	client := newTestClient(t, map[string]content.Document{
		"pension-credit": guide(ratesPart(`
			<p>Your weekly income will be topped up to £227.10 if you're single.</p>`)),
	})

	scraper, _ := Lookup("pension_credit")
	parsed, err := scraper.Scrape(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"single_weekly": 227.10}, parsed.Values)
}
