// Package rates defines the canonical benefit-rate data model: the
// persisted rate store, the partial per-benefit extraction results, and
// the tax-year rules that govern them.
package rates

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BenefitID identifies one benefit in the rate store.
type BenefitID string

// Benefits tracked by the rate store.
const (
	BenefitAttendanceAllowance BenefitID = "attendance_allowance"
	BenefitPensionCredit       BenefitID = "pension_credit"
	BenefitCarersAllowance     BenefitID = "carers_allowance"
	BenefitChildBenefit        BenefitID = "child_benefit"
	BenefitPIP                 BenefitID = "pip"
	BenefitUniversalCredit     BenefitID = "universal_credit"
	BenefitMaternityAllowance  BenefitID = "maternity_allowance"
	BenefitMarriageAllowance   BenefitID = "marriage_allowance"
	BenefitBereavementSupport  BenefitID = "bereavement_support_payment"
	BenefitStatePension        BenefitID = "state_pension"
)

var titleCaser = cases.Title(language.BritishEnglish)

// DisplayName returns a human-readable name for the benefit.
func (b BenefitID) DisplayName() string {
	return titleCaser.String(strings.ReplaceAll(string(b), "_", " "))
}

// Layout describes how a benefit's rates live in the store: most
// benefits hold a nested group of rate keys, but a few keys (the state
// pension weekly rate) live directly at the root of the store.
type Layout int

// Store layouts.
const (
	LayoutGrouped Layout = iota
	LayoutRoot
)

// Group is one benefit's nested mapping of rate key to value.
type Group map[string]float64

// Parsed is one extractor's partial output: the rate keys it managed to
// extract for its benefit, plus the layout those keys merge under.
// A key absent from Values means "could not extract", never zero.
type Parsed struct {
	Layout Layout
	Values map[string]float64
}

// ParsedRates collects every extractor's output for one sync run.
type ParsedRates map[BenefitID]Parsed

// RateSet is the canonical rate store. The grouped/root split is
// resolved once when the store is decoded, so downstream code never
// re-inspects value shapes.
type RateSet struct {
	groups map[BenefitID]Group
	root   map[string]float64
}

// NewRateSet returns an empty rate set.
func NewRateSet() *RateSet {
	return &RateSet{
		groups: make(map[BenefitID]Group),
		root:   make(map[string]float64),
	}
}

// Group returns the nested rate group for a benefit.
func (rs *RateSet) Group(benefit BenefitID) (Group, bool) {
	g, ok := rs.groups[benefit]
	return g, ok
}

// SetGroup replaces the nested rate group for a benefit.
func (rs *RateSet) SetGroup(benefit BenefitID, group Group) {
	rs.groups[benefit] = group
}

// RootValue returns a root-level rate value.
func (rs *RateSet) RootValue(key string) (float64, bool) {
	v, ok := rs.root[key]
	return v, ok
}

// SetRootValue sets a root-level rate value.
func (rs *RateSet) SetRootValue(key string, value float64) {
	rs.root[key] = value
}

// LayoutOf reports the layout the store already holds for a benefit:
// grouped when it has a group of that name, root when a root-level key
// carries the benefit name as its prefix. The second return value is
// false when the store has no entry for it, in which case the caller
// falls back to the extractor's declared layout.
func (rs *RateSet) LayoutOf(benefit BenefitID) (Layout, bool) {
	if _, ok := rs.groups[benefit]; ok {
		return LayoutGrouped, true
	}
	for key := range rs.root {
		if strings.HasPrefix(key, string(benefit)+"_") {
			return LayoutRoot, true
		}
	}
	return LayoutGrouped, false
}

// Benefits returns the grouped benefit IDs in sorted order.
func (rs *RateSet) Benefits() []BenefitID {
	ids := make([]BenefitID, 0, len(rs.groups))
	for id := range rs.groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns a deep copy of the rate set.
func (rs *RateSet) Clone() *RateSet {
	clone := NewRateSet()
	for benefit, group := range rs.groups {
		copied := make(Group, len(group))
		for k, v := range group {
			copied[k] = v
		}
		clone.groups[benefit] = copied
	}
	for k, v := range rs.root {
		clone.root[k] = v
	}
	return clone
}

// Flatten converts the rate set to dot-joined path → value pairs:
// root keys keep their name, grouped keys become "benefit.key".
func (rs *RateSet) Flatten() map[string]float64 {
	flat := make(map[string]float64, len(rs.root))
	for k, v := range rs.root {
		flat[k] = v
	}
	for benefit, group := range rs.groups {
		for k, v := range group {
			flat[string(benefit)+"."+k] = v
		}
	}
	return flat
}

// MarshalJSON encodes the store as the single mixed object the rate
// file uses: group objects and root-level numbers side by side.
func (rs *RateSet) MarshalJSON() ([]byte, error) {
	combined := make(map[string]any, len(rs.groups)+len(rs.root))
	for benefit, group := range rs.groups {
		combined[string(benefit)] = group
	}
	for k, v := range rs.root {
		combined[k] = v
	}
	return json.Marshal(combined)
}

// UnmarshalJSON decodes the mixed store object, classifying each
// top-level entry as a nested group or a root-level value. Entries that
// are neither objects nor finite numbers are ignored.
func (rs *RateSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rs.groups = make(map[BenefitID]Group)
	rs.root = make(map[string]float64)

	for key, value := range raw {
		var group map[string]json.RawMessage
		if err := json.Unmarshal(value, &group); err == nil {
			decoded := make(Group, len(group))
			for k, v := range group {
				var num float64
				if err := json.Unmarshal(v, &num); err == nil && isFinite(num) {
					decoded[k] = num
				}
			}
			rs.groups[BenefitID(key)] = decoded
			continue
		}

		var num float64
		if err := json.Unmarshal(value, &num); err == nil && isFinite(num) {
			rs.root[key] = num
		}
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
