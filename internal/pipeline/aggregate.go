package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/internal/scrapers"
	"github.com/openbenefits/ratesync/pkg/rates"
)

// Aggregate runs every scraper concurrently and collects their
// extractions. The run is fail-fast: the first scraper to return an
// error (a failed primary fetch) cancels the shared context and the
// whole batch is discarded. Scrapers share no mutable state, so the
// join is the only synchronization point.
func Aggregate(ctx context.Context, client *content.Client, all []scrapers.Scraper) (rates.ParsedRates, error) {
	group, ctx := errgroup.WithContext(ctx)
	results := make([]rates.Parsed, len(all))

	for i, scraper := range all {
		i, scraper := i, scraper
		group.Go(func() error {
			parsed, err := scraper.Scrape(ctx, client)
			if err != nil {
				return err
			}
			results[i] = parsed
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	parsed := make(rates.ParsedRates, len(all))
	for i, scraper := range all {
		parsed[scraper.Benefit()] = results[i]
	}
	return parsed, nil
}
