package scrapers

import (
	"context"
	"regexp"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/internal/htmltext"
	"github.com/openbenefits/ratesync/pkg/rates"
)

func init() {
	Register(&marriageAllowance{})
}

// marriageAllowance extracts the transferable allowance, the annual
// tax saving, and the backdating window from the Marriage Allowance
// page prose.
type marriageAllowance struct{}

var (
	mgTransfer = regexp.MustCompile(`(?i)transfer (?:up to )?` + amount)
	mgValue    = regexp.MustCompile(`(?i)(?:reduce|save)[^£]{0,80}` + amount)
	mgBackdate = regexp.MustCompile(`(?i)backdate[^0-9]{0,60}(\d+) year`)
)

func (s *marriageAllowance) Benefit() rates.BenefitID {
	return rates.BenefitMarriageAllowance
}

func (s *marriageAllowance) Scrape(ctx context.Context, client *content.Client) (rates.Parsed, error) {
	section, err := fetchSection(ctx, client, "marriage-allowance", "")
	if err != nil {
		return rates.Parsed{}, err
	}
	text := htmltext.Text(section)

	values := make(map[string]float64)
	if v, ok := amountNear(mgTransfer, text); ok {
		values["transferable_amount"] = v
	}
	if v, ok := amountNear(mgValue, text); ok {
		values["annual_value"] = v
	}
	if v, ok := intNear(mgBackdate, text); ok {
		values["backdate_years"] = v
	}

	return grouped(values), nil
}
