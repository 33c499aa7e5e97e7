package scrapers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbenefits/ratesync/internal/content"
)

func childBenefitPage() content.Document {
	return guide(ratesPart(`
		<table>
		  <tr><th>Who the allowance is for</th><th>Weekly rate</th></tr>
		  <tr><td>Eldest or only child</td><td>£26.05</td></tr>
		  <tr><td>Additional children</td><td>£17.25 per child</td></tr>
		</table>`))
}

func TestChildBenefitTableAndHICBC(t *testing.T) {
	taxCharge := guide(content.Part{Slug: "overview", Body: `
		<p>You may have to pay the High Income Child Benefit Charge if your
		income is over £60,000. You pay back all of your Child Benefit if
		you earn £80,000 or more.</p>`})

	client := newTestClient(t, map[string]content.Document{
		"child-benefit":            childBenefitPage(),
		"child-benefit-tax-charge": taxCharge,
	})

	scraper, _ := Lookup("child_benefit")
	parsed, err := scraper.Scrape(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"first_child_weekly":      26.05,
		"additional_child_weekly": 17.25,
		"hicbc_threshold":         60000,
		"hicbc_full_clawback":     80000,
	}, parsed.Values)
}

func TestChildBenefitSecondaryFetchFailureSwallowed(t *testing.T) {
	// The tax-charge page 404s; the weekly rates still come through
	// and the HICBC fields are simply absent.
	client := newTestClient(t, map[string]content.Document{
		"child-benefit": childBenefitPage(),
	})

	scraper, _ := Lookup("child_benefit")
	parsed, err := scraper.Scrape(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"first_child_weekly":      26.05,
		"additional_child_weekly": 17.25,
	}, parsed.Values)
}
