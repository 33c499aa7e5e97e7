// Package pipeline sequences one rate-sync run: load the existing
// store, aggregate the scrapers, merge, validate, and persist or
// abort. Only this package touches the filesystem and decides exit
// semantics; the merge and validation stages stay pure.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openbenefits/ratesync/internal/content"
	"github.com/openbenefits/ratesync/internal/scrapers"
	"github.com/openbenefits/ratesync/pkg/errors"
	"github.com/openbenefits/ratesync/pkg/logging"
	"github.com/openbenefits/ratesync/pkg/merge"
	"github.com/openbenefits/ratesync/pkg/rates"
	"github.com/openbenefits/ratesync/pkg/validate"
)

// Options configures one pipeline run.
type Options struct {
	// StorePath is the benefit-rates JSON file to update.
	StorePath string

	// Client fetches content documents.
	Client *content.Client

	// DryRun runs the full fetch/merge/validate sequence but never
	// writes the store.
	DryRun bool

	// Now supplies the date stamped into last_updated; defaults to
	// time.Now. Injected for tests.
	Now func() time.Time
}

// Summary reports what one run did.
type Summary struct {
	TaxYear    string
	Stats      merge.Stats
	Events     []merge.Event
	Validation validate.Result
	Written    bool
}

// Run executes the fetch → merge → validate → persist sequence.
//
// A fetch failure aborts the run before anything is merged. A merge
// with zero changed values is a successful no-op: validation and
// persistence are skipped entirely. A failed validation returns a
// ValidationFailedError and writes nothing.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	log := logging.Ctx(ctx)

	file, err := rates.Load(opts.StorePath)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("store", opts.StorePath).
		Str("tax_year", file.TaxYear).
		Msg("Loaded existing rate store")

	parsed, err := Aggregate(ctx, opts.Client, scrapers.All())
	if err != nil {
		return nil, err
	}

	result := merge.Merge(parsed, file.Rates)
	summary := &Summary{
		TaxYear: file.TaxYear,
		Stats:   result.Stats,
		Events:  result.Events,
	}
	logMergeEvents(log, result)

	if !result.HasChanges() {
		log.Info().Msg("No rate changes detected, store left untouched")
		return summary, nil
	}

	summary.Validation = validate.Check(result.Rates, file.Rates, file.TaxYear)
	for _, warning := range summary.Validation.Warnings {
		log.Warn().Str("finding", warning).Msg("Validation warning")
	}
	if !summary.Validation.Valid {
		return summary, errors.NewValidationFailedError(
			summary.Validation.Errors, summary.Validation.Warnings)
	}

	if opts.DryRun {
		log.Info().
			Int("changed", result.Stats.Changed).
			Msg("Dry run completed, store left untouched")
		return summary, nil
	}

	updated := &rates.File{
		TaxYear:     file.TaxYear,
		LastUpdated: opts.Now().Format("2006-01-02"),
		Source:      file.Source,
		Rates:       result.Rates,
	}
	if err := updated.Save(opts.StorePath); err != nil {
		return summary, err
	}
	summary.Written = true

	log.Info().
		Int("changed", result.Stats.Changed).
		Int("unchanged", result.Stats.Unchanged).
		Int("kept", result.Stats.Kept).
		Int("new", result.Stats.New).
		Str("store", opts.StorePath).
		Msg("Rate store updated")
	return summary, nil
}

// logMergeEvents reports the merger's decisions: value changes at info
// level, the quiet decisions at debug.
func logMergeEvents(log *zerolog.Logger, result *merge.Result) {
	for _, event := range result.Events {
		switch event.Type {
		case merge.ChangeUpdated:
			log.Info().
				Str("path", event.Path).
				Float64("old", event.Old).
				Float64("new", event.New).
				Msg("Rate changed")
		case merge.ChangeNew:
			log.Info().
				Str("path", event.Path).
				Float64("value", event.New).
				Msg("New rate key")
		default:
			log.Debug().
				Str("path", event.Path).
				Str("decision", string(event.Type)).
				Msg("Rate retained")
		}
	}
}
