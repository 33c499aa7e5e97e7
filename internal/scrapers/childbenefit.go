package scrapers

import (
	"context"
	"regexp"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/internal/htmltext"
	"github.com/openbenefits/ratesync/pkg/logging"
	"github.com/openbenefits/ratesync/pkg/rates"
)

func init() {
	Register(&childBenefit{})
}

// childBenefit extracts the per-child weekly rates from the Child
// Benefit rate table, then enriches the result with the High Income
// Child Benefit Charge threshold and full-clawback figures from the
// tax-charge page. The enrichment fetch is optional: its failure
// leaves the HICBC fields absent and does not fail the run.
type childBenefit struct{}

var (
	cbThreshold = regexp.MustCompile(`(?i)(?:income|you earn)[^£]{0,80}(?:over|above|more than) ` + amount)
	cbClawback  = regexp.MustCompile(`(?i)` + amount + `\s*(?:or more|and over|or above)`)
)

func (s *childBenefit) Benefit() rates.BenefitID {
	return rates.BenefitChildBenefit
}

func (s *childBenefit) Scrape(ctx context.Context, client *content.Client) (rates.Parsed, error) {
	doc, err := client.Fetch(ctx, "child-benefit")
	if err != nil {
		return rates.Parsed{}, err
	}

	values := make(map[string]float64)
	for _, row := range htmltext.Rows(doc.Section(ratesSlug)) {
		label := row.Joined()
		amounts := rowAmounts(row)
		if len(amounts) == 0 {
			continue
		}
		switch {
		case containsFold(label, "eldest") || containsFold(label, "only") || containsFold(label, "first"):
			values["first_child_weekly"] = amounts[0]
		case containsFold(label, "additional") || containsFold(label, "other"):
			values["additional_child_weekly"] = amounts[0]
		}
	}

	s.enrichHICBC(ctx, client, values)

	return grouped(values), nil
}

// enrichHICBC pulls the tax-charge figures from the secondary page.
func (s *childBenefit) enrichHICBC(ctx context.Context, client *content.Client, values map[string]float64) {
	doc, err := client.Fetch(ctx, "child-benefit-tax-charge")
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("path", "child-benefit-tax-charge").
			Msg("HICBC enrichment fetch failed, leaving fields absent")
		return
	}

	text := htmltext.Text(doc.Section(""))
	if v, ok := amountNear(cbThreshold, text); ok {
		values["hicbc_threshold"] = v
	}
	if v, ok := amountNear(cbClawback, text); ok {
		values["hicbc_full_clawback"] = v
	}
}
