package scrapers

import (
	"context"
	"regexp"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/internal/htmltext"
	"github.com/openbenefits/ratesync/pkg/rates"
)

func init() {
	Register(&statePension{})
}

// statePension extracts the full new State Pension weekly rate. The
// key lives at the root of the rate store rather than in a nested
// group, so the extraction declares the root layout.
type statePension struct{}

var spFullWeekly = regexp.MustCompile(`(?i)(?:full|maximum)[^£]{0,120}` + amount + `[^£]{0,40}week`)

func (s *statePension) Benefit() rates.BenefitID {
	return rates.BenefitStatePension
}

func (s *statePension) Scrape(ctx context.Context, client *content.Client) (rates.Parsed, error) {
	section, err := fetchSection(ctx, client, "new-state-pension", ratesSlug)
	if err != nil {
		return rates.Parsed{}, err
	}
	text := htmltext.Text(section)

	values := make(map[string]float64)
	if v, ok := amountNear(spFullWeekly, text); ok {
		values["state_pension_full_new_weekly"] = v
	}

	return rates.Parsed{Layout: rates.LayoutRoot, Values: values}, nil
}
