// Package scrapers implements the per-benefit rate extractors. Each
// scraper fetches one benefit's GOV.UK content document and extracts a
// partial mapping of rate key to numeric value. A field the page no
// longer yields is simply absent from the output; only fetch failures
// are errors.
package scrapers

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/internal/htmltext"
	"github.com/openbenefits/ratesync/pkg/money"
	"github.com/openbenefits/ratesync/pkg/rates"
)

// Scraper extracts one benefit's rates from its fetched content.
type Scraper interface {
	// Benefit returns the benefit this scraper populates.
	Benefit() rates.BenefitID

	// Scrape fetches the benefit's document(s) and extracts whatever
	// rate keys it can. A failed primary fetch returns an error;
	// unextractable fields are absent from the result.
	Scrape(ctx context.Context, client *content.Client) (rates.Parsed, error)
}

// ratesSlug is the guide part most benefit pages publish rates under.
const ratesSlug = "what-youll-get"

// fetchSection fetches a document and returns the section to scrape.
func fetchSection(ctx context.Context, client *content.Client, path, slug string) (string, error) {
	doc, err := client.Fetch(ctx, path)
	if err != nil {
		return "", err
	}
	return doc.Section(slug), nil
}

// amount is the regex fragment for one currency-marked amount.
const amount = `£[\d,]+(?:\.\d{1,2})?`

// amountNear returns the amount inside the first match of re, which
// must embed the amount fragment.
func amountNear(re *regexp.Regexp, text string) (float64, bool) {
	match := re.FindString(text)
	if match == "" {
		return 0, false
	}
	return money.FirstAmount(match)
}

// intNear returns the first capture group of re parsed as an integer.
func intNear(re *regexp.Regexp, text string) (float64, bool) {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return float64(n), true
}

// containsFold reports case-insensitive substring containment, the
// classification primitive every table scraper uses.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// rowAmounts returns every currency amount in a table row, cell order.
func rowAmounts(row htmltext.Row) []float64 {
	return money.AllAmounts(row.Joined())
}

// minMax returns the smallest and largest of a non-empty slice.
func minMax(values []float64) (minVal, maxVal float64) {
	minVal, maxVal = values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// grouped wraps a value map as a grouped-layout extraction result.
func grouped(values map[string]float64) rates.Parsed {
	return rates.Parsed{Layout: rates.LayoutGrouped, Values: values}
}
