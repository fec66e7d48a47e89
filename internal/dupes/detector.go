// Package dupes finds likely duplicate routes across the merged record set.
// The three sources share no identifier, so candidates are found by fuzzy
// title similarity. This is an annotation pass for downstream review; it
// never merges or drops records.
//
// The scan is a full pairwise comparison, O(n²) in the number of records.
// That is fine for the hundreds to low thousands of routes the scrapers
// produce; anything bigger needs blocking or an n-gram index first.
package dupes

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/philippdrebes/MSCIDS-CIP02/internal/route"
)

// DefaultThreshold is the weighted-token-ratio score at or above which two
// titles count as duplicate candidates.
const DefaultThreshold = 95

// Detector annotates routes with duplicate candidates
type Detector struct {
	threshold int
}

// Option configures a Detector
type Option func(*Detector)

// WithThreshold overrides the similarity threshold
func WithThreshold(threshold int) Option {
	return func(d *Detector) {
		d.threshold = threshold
	}
}

// New creates a Detector
func New(opts ...Option) *Detector {
	d := &Detector{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Find returns, for every route, the IDs of all routes whose title scores at
// or above the threshold. The sets are self-inclusive since a title trivially
// matches itself; a record with only its own ID has no duplicate candidates.
func (d *Detector) Find(routes []route.Route) map[string][]string {
	result := make(map[string][]string, len(routes))
	for i := range routes {
		candidates := make([]string, 0, 1)
		for j := range routes {
			if i == j {
				candidates = append(candidates, routes[j].ID())
				continue
			}
			if fuzzy.WRatio(routes[i].Title, routes[j].Title) >= d.threshold {
				candidates = append(candidates, routes[j].ID())
			}
		}
		result[routes[i].ID()] = candidates
	}
	return result
}
