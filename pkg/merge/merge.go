// Package merge folds freshly-extracted benefit rates into the
// existing canonical rate set. The fold is pure: it returns the
// updated set, counters, and an ordered event list describing every
// per-key decision, leaving reporting to the caller.
package merge

import (
	"math"
	"sort"

	"github.com/openbenefits/ratesync/pkg/rates"
)

// ChangeType classifies one per-key merge decision.
type ChangeType string

// Merge decisions.
const (
	// ChangeNew is a key with no prior value.
	ChangeNew ChangeType = "new"
	// ChangeUpdated is a key whose value differs from the stored one.
	ChangeUpdated ChangeType = "changed"
	// ChangeUnchanged is a key whose extracted value equals the stored one.
	ChangeUnchanged ChangeType = "unchanged"
	// ChangeKept is a stored key the extractors produced no value for;
	// its existing value is retained untouched.
	ChangeKept ChangeType = "kept"
)

// Event records one per-key merge decision.
type Event struct {
	Benefit rates.BenefitID
	Path    string // flattened path ("benefit.key" or a root key)
	Type    ChangeType
	Old     float64 // zero for ChangeNew
	New     float64 // equals Old for ChangeKept
}

// Stats counts merge decisions across the whole run.
type Stats struct {
	Changed   int
	Unchanged int
	New       int
	Kept      int
}

// Result is the outcome of one merge.
type Result struct {
	Rates  *rates.RateSet
	Stats  Stats
	Events []Event
}

// HasChanges reports whether any stored value actually changed. New
// and kept keys alone do not warrant a rewrite of the store.
func (r *Result) HasChanges() bool {
	return r.Stats.Changed > 0
}

// Merge folds parsed rates into a copy of the existing set. The
// existing set is never mutated. Keys the extractors could not produce
// retain their stored values and are counted kept; non-finite parsed
// values are discarded.
func Merge(parsed rates.ParsedRates, existing *rates.RateSet) *Result {
	result := &Result{Rates: existing.Clone()}

	for _, benefit := range sortedBenefits(parsed) {
		extraction := parsed[benefit]

		// The store is authoritative about where a benefit lives.
		layout, known := existing.LayoutOf(benefit)
		if !known {
			layout = extraction.Layout
		}

		if layout == rates.LayoutRoot {
			mergeRoot(result, benefit, extraction.Values)
			continue
		}
		mergeGroup(result, benefit, extraction.Values)
	}

	return result
}

func mergeGroup(result *Result, benefit rates.BenefitID, values map[string]float64) {
	group, ok := result.Rates.Group(benefit)
	if !ok {
		group = make(rates.Group)
	}

	for _, key := range sortedKeys(values) {
		value := values[key]
		if !finite(value) {
			continue
		}
		old, exists := group[key]
		record(result, Event{
			Benefit: benefit,
			Path:    string(benefit) + "." + key,
			Type:    classify(old, value, exists),
			Old:     old,
			New:     value,
		})
		group[key] = value
	}

	for _, key := range sortedKeys(group) {
		if _, ok := values[key]; ok {
			continue
		}
		record(result, Event{
			Benefit: benefit,
			Path:    string(benefit) + "." + key,
			Type:    ChangeKept,
			Old:     group[key],
			New:     group[key],
		})
	}

	result.Rates.SetGroup(benefit, group)
}

func mergeRoot(result *Result, benefit rates.BenefitID, values map[string]float64) {
	for _, key := range sortedKeys(values) {
		value := values[key]
		if !finite(value) {
			continue
		}
		old, exists := result.Rates.RootValue(key)
		record(result, Event{
			Benefit: benefit,
			Path:    key,
			Type:    classify(old, value, exists),
			Old:     old,
			New:     value,
		})
		result.Rates.SetRootValue(key, value)
	}
}

func record(result *Result, event Event) {
	result.Events = append(result.Events, event)
	switch event.Type {
	case ChangeNew:
		result.Stats.New++
	case ChangeUpdated:
		result.Stats.Changed++
	case ChangeUnchanged:
		result.Stats.Unchanged++
	case ChangeKept:
		result.Stats.Kept++
	}
}

func classify(old, value float64, exists bool) ChangeType {
	switch {
	case !exists:
		return ChangeNew
	case old == value:
		return ChangeUnchanged
	default:
		return ChangeUpdated
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func sortedBenefits(parsed rates.ParsedRates) []rates.BenefitID {
	ids := make([]rates.BenefitID, 0, len(parsed))
	for id := range parsed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
