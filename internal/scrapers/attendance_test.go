package scrapers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbenefits/ratesync/internal/content"
)

func TestAttendanceAllowanceTable(t *testing.T) {
	client := newTestClient(t, map[string]content.Document{
		"attendance-allowance": guide(ratesPart(`
			<table>
			  <tr><th>Rate</th><th>Weekly amount</th></tr>
			  <tr><td>Lower rate</td><td>£73.90</td></tr>
			  <tr><td>Higher rate</td><td>£110.40</td></tr>
			</table>`)),
	})

	scraper, _ := Lookup("attendance_allowance")
	parsed, err := scraper.Scrape(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"lower_weekly":  73.90,
		"higher_weekly": 110.40,
	}, parsed.Values)
}

func TestAttendanceAllowanceProseFallback(t *testing.T) {
	// No classifiable table rows: the two smallest distinct amounts on
	// the page become the lower and higher rates, ascending.
	client := newTestClient(t, map[string]content.Document{
		"attendance-allowance": guide(
			content.Part{Slug: "overview", Body: `<p>You could get £110.40 or £73.90 a week.
				Claims above £200 are not affected. Repeated £73.90 mention.</p>`},
		),
	})

	scraper, _ := Lookup("attendance_allowance")
	parsed, err := scraper.Scrape(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"lower_weekly":  73.90,
		"higher_weekly": 110.40,
	}, parsed.Values)
}

func TestAttendanceAllowanceFallbackNeedsTwoDistinctAmounts(t *testing.T) {
	client := newTestClient(t, map[string]content.Document{
		"attendance-allowance": guide(ratesPart(`<p>£73.90 and again £73.90</p>`)),
	})

	scraper, _ := Lookup("attendance_allowance")
	parsed, err := scraper.Scrape(context.Background(), client)
	require.NoError(t, err)
	assert.Empty(t, parsed.Values)
}
