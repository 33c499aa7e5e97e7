package scrapers

import (
	"context"
	"regexp"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/internal/htmltext"
	"github.com/openbenefits/ratesync/pkg/money"
	"github.com/openbenefits/ratesync/pkg/rates"
)

func init() {
	Register(&universalCredit{})
}

// universalCredit extracts standard allowances and elements from the
// Universal Credit rate tables, with prose fallbacks for the figures
// GOV.UK publishes outside tables.
type universalCredit struct{}

// ucRowRule classifies one table row by keyword containment. Rules are
// evaluated in order and the first match wins; the specific rules sit
// before the generic ones to resolve overlaps (a disabled-child row
// also contains "child", a first-child row also matches the generic
// child element).
type ucRowRule struct {
	key         string
	keywords    []string // every keyword must appear in the row text
	preferFirst bool     // take the first amount in the row, not the last
}

var ucRowRules = []ucRowRule{
	{key: "disabled_child_lower_monthly", keywords: []string{"disabled", "lower"}, preferFirst: true},
	{key: "disabled_child_higher_monthly", keywords: []string{"disabled", "higher"}, preferFirst: true},
	{key: "child_element_first_monthly", keywords: []string{"first child", "before"}},
	{key: "child_element_monthly", keywords: []string{"child"}},
	{key: "lcwra_element_monthly", keywords: []string{"limited capability for work", "work-related activity"}},
	{key: "standard_allowance_single_under_25", keywords: []string{"single", "under 25"}},
	{key: "standard_allowance_single_25_over", keywords: []string{"single", "25 or over"}},
	{key: "standard_allowance_couple_under_25", keywords: []string{"couple", "under 25"}},
	{key: "standard_allowance_couple_25_over", keywords: []string{"couple", "25 or over"}},
}

var (
	ucCarer        = regexp.MustCompile(`(?i)\bcar(?:er|ing)\b[^£]{0,120}` + amount)
	ucChildcareOne = regexp.MustCompile(`(?i)` + amount + `[^£]{0,60}for one child`)
	ucChildcareTwo = regexp.MustCompile(`(?i)` + amount + `[^£]{0,60}for (?:2|two) or more children`)
	ucCapitalUpper = regexp.MustCompile(`(?i)more than ` + amount)
	ucCapitalLower = regexp.MustCompile(`(?i)` + amount + ` or less`)
	ucFreeMeals    = regexp.MustCompile(`(?i)free school meals[^£]{0,200}` + amount)
)

func (s *universalCredit) Benefit() rates.BenefitID {
	return rates.BenefitUniversalCredit
}

func (s *universalCredit) Scrape(ctx context.Context, client *content.Client) (rates.Parsed, error) {
	doc, err := client.Fetch(ctx, "universal-credit")
	if err != nil {
		return rates.Parsed{}, err
	}
	section := doc.Section(ratesSlug)

	values := make(map[string]float64)
	for _, row := range htmltext.Rows(section) {
		s.classifyRow(row, values)
	}

	s.proseFallbacks(htmltext.Text(doc.Section("")), values)

	return grouped(values), nil
}

// classifyRow assigns a row's value to the first matching rule. The
// value is the last amount in the row, except where the rule prefers
// the first (disabled-child rows list the element before a footnote
// figure).
func (s *universalCredit) classifyRow(row htmltext.Row, values map[string]float64) {
	label := row.Joined()
	amounts := money.AllAmounts(label)
	if len(amounts) == 0 {
		return
	}

	for _, rule := range ucRowRules {
		if !matchesAll(label, rule.keywords) {
			continue
		}
		if _, exists := values[rule.key]; !exists {
			if rule.preferFirst {
				values[rule.key] = amounts[0]
			} else {
				values[rule.key] = amounts[len(amounts)-1]
			}
		}
		return
	}
}

// proseFallbacks extracts the figures published outside the rate
// tables. Fallbacks never overwrite a table-extracted value.
func (s *universalCredit) proseFallbacks(text string, values map[string]float64) {
	setIfAbsent := func(key string, re *regexp.Regexp) {
		if _, exists := values[key]; exists {
			return
		}
		if v, ok := amountNear(re, text); ok {
			values[key] = v
		}
	}

	setIfAbsent("carer_element_monthly", ucCarer)
	setIfAbsent("childcare_one_child_max_monthly", ucChildcareOne)
	setIfAbsent("childcare_two_plus_children_max_monthly", ucChildcareTwo)
	setIfAbsent("capital_upper_threshold", ucCapitalUpper)
	setIfAbsent("capital_lower_threshold", ucCapitalLower)
	setIfAbsent("free_school_meals_threshold", ucFreeMeals)
}

func matchesAll(label string, keywords []string) bool {
	for _, kw := range keywords {
		if !containsFold(label, kw) {
			return false
		}
	}
	return true
}
