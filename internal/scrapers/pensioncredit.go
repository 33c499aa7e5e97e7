package scrapers

import (
	"context"
	"regexp"
	"strings"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/internal/htmltext"
	"github.com/openbenefits/ratesync/pkg/rates"
)

func init() {
	Register(&pensionCredit{})
}

// pensionCredit extracts Guarantee Credit top-up levels, Savings
// Credit maximums, and the capital disregard from the Pension Credit
// page prose.
type pensionCredit struct{}

// savingsCreditWindow bounds the prose window scanned after the
// "Savings Credit" heading, so the single/partner regexes don't pick
// up Guarantee Credit figures further down the page.
const savingsCreditWindow = 500

var (
	pcTopUpSingle   = regexp.MustCompile(`(?i)topped up to ` + amount + `[^£]{0,60}single`)
	pcTopUpCouple   = regexp.MustCompile(`(?i)topped up to ` + amount + `[^£]{0,60}partner`)
	pcSavingsSingle = regexp.MustCompile(`(?i)` + amount + `[^£]{0,60}single`)
	pcSavingsCouple = regexp.MustCompile(`(?i)` + amount + `[^£]{0,60}partner`)
	pcCapital       = regexp.MustCompile(`(?i)first ` + amount + `[^£]{0,60}(?:capital|savings)`)
)

func (s *pensionCredit) Benefit() rates.BenefitID {
	return rates.BenefitPensionCredit
}

func (s *pensionCredit) Scrape(ctx context.Context, client *content.Client) (rates.Parsed, error) {
	section, err := fetchSection(ctx, client, "pension-credit", ratesSlug)
	if err != nil {
		return rates.Parsed{}, err
	}
	text := htmltext.Text(section)

	values := make(map[string]float64)
	if v, ok := amountNear(pcTopUpSingle, text); ok {
		values["single_weekly"] = v
	}
	if v, ok := amountNear(pcTopUpCouple, text); ok {
		values["couple_weekly"] = v
	}

	if idx := strings.Index(strings.ToLower(text), "savings credit"); idx >= 0 {
		end := idx + savingsCreditWindow
		if end > len(text) {
			end = len(text)
		}
		window := text[idx:end]
		if v, ok := amountNear(pcSavingsSingle, window); ok {
			values["savings_credit_single_max_weekly"] = v
		}
		if v, ok := amountNear(pcSavingsCouple, window); ok {
			values["savings_credit_couple_max_weekly"] = v
		}
	}

	if v, ok := amountNear(pcCapital, text); ok {
		values["capital_disregard"] = v
	}

	return grouped(values), nil
}
