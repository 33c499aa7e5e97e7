package scrapers

import (
	"context"
	"sort"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/internal/htmltext"
	"github.com/openbenefits/ratesync/pkg/money"
	"github.com/openbenefits/ratesync/pkg/rates"
)

func init() {
	Register(&attendanceAllowance{})
}

// attendanceAllowance extracts the lower and higher weekly rates from
// the Attendance Allowance rate table, falling back to the two
// smallest distinct amounts anywhere on the page when the table labels
// are missing.
type attendanceAllowance struct{}

func (s *attendanceAllowance) Benefit() rates.BenefitID {
	return rates.BenefitAttendanceAllowance
}

func (s *attendanceAllowance) Scrape(ctx context.Context, client *content.Client) (rates.Parsed, error) {
	doc, err := client.Fetch(ctx, "attendance-allowance")
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
		case containsFold(label, "lower"):
			values["lower_weekly"] = amounts[0]
		case containsFold(label, "higher"):
			values["higher_weekly"] = amounts[0]
		}
	}

	_, haveLower := values["lower_weekly"]
	_, haveHigher := values["higher_weekly"]
	if !haveLower || !haveHigher {
		if lower, higher, ok := twoSmallestDistinct(htmltext.Text(doc.Section(""))); ok {
			values["lower_weekly"] = lower
			values["higher_weekly"] = higher
		}
	}

	return grouped(values), nil
}

// twoSmallestDistinct finds the two smallest distinct amounts in the
// full-page prose, ascending, so the lower rate sorts first.
func twoSmallestDistinct(text string) (lower, higher float64, ok bool) {
	seen := make(map[float64]bool)
	var distinct []float64
	for _, v := range money.AllAmounts(text) {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	if len(distinct) < 2 {
		return 0, 0, false
	}
	sort.Float64s(distinct)
	return distinct[0], distinct[1], true
}
