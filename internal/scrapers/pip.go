package scrapers

import (
	"context"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/internal/htmltext"
	"github.com/openbenefits/ratesync/pkg/rates"
)

func init() {
	Register(&pip{})
}

// pip extracts the Personal Independence Payment component rates. Each
// table row holds both weekly amounts for a component; the smaller is
// the standard rate and the larger the enhanced rate.
type pip struct{}

func (s *pip) Benefit() rates.BenefitID {
	return rates.BenefitPIP
}

func (s *pip) Scrape(ctx context.Context, client *content.Client) (rates.Parsed, error) {
	section, err := fetchSection(ctx, client, "pip", ratesSlug)
	if err != nil {
		return rates.Parsed{}, err
	}

	values := make(map[string]float64)
	for _, row := range htmltext.Rows(section) {
		label := row.Joined()
		amounts := rowAmounts(row)
		if len(amounts) == 0 {
			continue
		}
		standard, enhanced := minMax(amounts)
		switch {
		case containsFold(label, "daily living"):
			values["daily_living_standard_weekly"] = standard
			values["daily_living_enhanced_weekly"] = enhanced
		case containsFold(label, "mobility"):
			values["mobility_standard_weekly"] = standard
			values["mobility_enhanced_weekly"] = enhanced
		}
	}

	return grouped(values), nil
}
