package scrapers

import (
	"sort"
	"sync"

	"github.com/openbenefits/ratesync/pkg/rates"
)

var (
	mu       sync.RWMutex
	registry = make(map[rates.BenefitID]Scraper)
)

// Register adds a scraper to the registry. Scraper files call this
// from their init functions.
func Register(s Scraper) {
	mu.Lock()
	defer mu.Unlock()
	registry[s.Benefit()] = s
}

// All returns every registered scraper, ordered by benefit ID so runs
// are deterministic.
func All() []Scraper {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]rates.BenefitID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	all := make([]Scraper, 0, len(ids))
	for _, id := range ids {
		all = append(all, registry[id])
	}
	return all
}

// Lookup returns the scraper for a benefit ID.
func Lookup(id rates.BenefitID) (Scraper, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := registry[id]
	return s, ok
}
