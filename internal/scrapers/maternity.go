package scrapers

import (
	"context"
	"regexp"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/internal/htmltext"
	"github.com/openbenefits/ratesync/pkg/rates"
)

func init() {
	Register(&maternityAllowance{})
}

// maternityAllowance extracts the weekly rate and payment duration
// from the Maternity Allowance page prose.
type maternityAllowance struct{}

var (
	maWeekly   = regexp.MustCompile(`(?i)` + amount + ` a week`)
	maDuration = regexp.MustCompile(`(?i)(?:for )?(?:up to )?(\d+) weeks`)
)

func (s *maternityAllowance) Benefit() rates.BenefitID {
	return rates.BenefitMaternityAllowance
}

func (s *maternityAllowance) Scrape(ctx context.Context, client *content.Client) (rates.Parsed, error) {
	section, err := fetchSection(ctx, client, "maternity-allowance", ratesSlug)
	if err != nil {
		return rates.Parsed{}, err
	}
	text := htmltext.Text(section)

	values := make(map[string]float64)
	if v, ok := amountNear(maWeekly, text); ok {
		values["weekly"] = v
	}
	if v, ok := intNear(maDuration, text); ok {
		values["duration_weeks"] = v
	}

	return grouped(values), nil
}
