package scrapers

import (
	"context"
	"regexp"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/internal/htmltext"
	"github.com/openbenefits/ratesync/pkg/rates"
)

func init() {
	Register(&bereavementSupport{})
}

// bereavementSupport extracts the Bereavement Support Payment rates.
// A table row with two amounts carries a lump sum (the larger) and a
// monthly payment (the smaller); a single amount is a lump sum only.
// The payment duration comes from a prose regex.
type bereavementSupport struct{}

var bspDuration = regexp.MustCompile(`(?i)(?:for )?(?:up to )?(\d+) month`)

func (s *bereavementSupport) Benefit() rates.BenefitID {
	return rates.BenefitBereavementSupport
}

func (s *bereavementSupport) Scrape(ctx context.Context, client *content.Client) (rates.Parsed, error) {
	doc, err := client.Fetch(ctx, "bereavement-support-payment")
	if err != nil {
		return rates.Parsed{}, err
	}
	section := doc.Section(ratesSlug)

	values := make(map[string]float64)
	for _, row := range htmltext.Rows(section) {
		label := row.Joined()
		amounts := rowAmounts(row)
		if len(amounts) == 0 {
			continue
		}
		switch {
		case containsFold(label, "higher"):
			s.assignRow("higher", amounts, values)
		case containsFold(label, "standard"):
			s.assignRow("standard", amounts, values)
		}
	}

	if v, ok := intNear(bspDuration, htmltext.Text(section)); ok {
		values["duration_months"] = v
	}

	return grouped(values), nil
}

func (s *bereavementSupport) assignRow(tier string, amounts []float64, values map[string]float64) {
	if len(amounts) >= 2 {
		monthly, lumpSum := minMax(amounts)
		values[tier+"_lump_sum"] = lumpSum
		values[tier+"_monthly"] = monthly
		return
	}
	values[tier+"_lump_sum"] = amounts[0]
}
