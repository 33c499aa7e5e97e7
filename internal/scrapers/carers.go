package scrapers

import (
	"context"
	"regexp"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/internal/htmltext"
	"github.com/openbenefits/ratesync/pkg/rates"
)

func init() {
	Register(&carersAllowance{})
}

// carersAllowance extracts the weekly rate and the earnings limit from
// the Carer's Allowance page prose. The earnings limit is accepted
// only when it differs from the weekly rate, since both figures match
// a "£X a week" shape.
type carersAllowance struct{}

var (
	caWeekly   = regexp.MustCompile(`(?i)` + amount + ` a week`)
	caEarnings = regexp.MustCompile(`(?i)earn(?:ings)?[^£]{0,100}` + amount)
)

func (s *carersAllowance) Benefit() rates.BenefitID {
	return rates.BenefitCarersAllowance
}

func (s *carersAllowance) Scrape(ctx context.Context, client *content.Client) (rates.Parsed, error) {
	section, err := fetchSection(ctx, client, "carers-allowance", ratesSlug)
	if err != nil {
		return rates.Parsed{}, err
	}
	text := htmltext.Text(section)

	values := make(map[string]float64)
	weekly, haveWeekly := amountNear(caWeekly, text)
	if haveWeekly {
		values["weekly"] = weekly
	}
	if limit, ok := amountNear(caEarnings, text); ok {
		if !haveWeekly || limit != weekly {
			values["earnings_limit_weekly"] = limit
		}
	}

	return grouped(values), nil
}
