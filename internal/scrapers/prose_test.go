package scrapers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/pkg/rates"
)

func TestCarersAllowance(t *testing.T) {
	client := newTestClient(t, map[string]content.Document{
		"carers-allowance": guide(ratesPart(`
			<p>You could get £83.30 a week if you care for someone at least
			35 hours a week.</p>
			<p>Your earnings must be £196 or less a week after tax.</p>`)),
	})

	scraper, _ := Lookup("carers_allowance")
	parsed, err := scraper.Scrape(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"weekly":                83.30,
		"earnings_limit_weekly": 196,
	}, parsed.Values)
}

func TestCarersAllowanceEarningsLimitMustDiffer(t *testing.T) {
	// When the earnings regex lands on the same figure as the weekly
	// rate, it is rejected rather than recorded twice.
	client := newTestClient(t, map[string]content.Document{
		"carers-allowance": guide(ratesPart(`
			<p>You could get £83.30 a week. What you earn matters: the £83.30
			figure is unaffected by small earnings.</p>`)),
	})

	scraper, _ := Lookup("carers_allowance")
	parsed, err := scraper.Scrape(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"weekly": 83.30}, parsed.Values)
}

func TestMaternityAllowance(t *testing.T) {
	client := newTestClient(t, map[string]content.Document{
		"maternity-allowance": guide(ratesPart(`
			<p>You could get £187.18 a week or 90% of your average weekly
			earnings, whichever is less, for up to 39 weeks.</p>`)),
	})

	scraper, _ := Lookup("maternity_allowance")
	parsed, err := scraper.Scrape(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"weekly":         187.18,
		"duration_weeks": 39,
	}, parsed.Values)
}

func TestMarriageAllowance(t *testing.T) {
	client := newTestClient(t, map[string]content.Document{
		"marriage-allowance": guide(content.Part{Slug: "overview", Body: `
			<p>Marriage Allowance lets you transfer £1,260 of your Personal
			Allowance to your husband, wife or civil partner.</p>
			<p>This reduces their tax by up to £252 in the tax year.</p>
			<p>You can backdate your claim by up to 4 years.</p>`}),
	})

	scraper, _ := Lookup("marriage_allowance")
	parsed, err := scraper.Scrape(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"transferable_amount": 1260,
		"annual_value":        252,
		"backdate_years":      4,
	}, parsed.Values)
}

func TestStatePensionRootLayout(t *testing.T) {
	client := newTestClient(t, map[string]content.Document{
		"new-state-pension": guide(ratesPart(`
			<p>The full new State Pension is £230.25 a week.</p>`)),
	})

	scraper, _ := Lookup("state_pension")
	parsed, err := scraper.Scrape(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"state_pension_full_new_weekly": 230.25}, parsed.Values)
	assert.Equal(t, rates.LayoutRoot, parsed.Layout, "state pension keys merge at the store root")
}
