// Package match assigns GPX file names to route titles. Titles and file
// names come from independent scrapes with no shared key, so assignment is
// fuzzy: each title greedily takes the best-scoring remaining file, and a
// taken file leaves the pool for good.
package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// wordBridge translates the English route vocabulary Komoot uses in titles
// into the German words that appear in the GPX file names.
var wordBridge = strings.NewReplacer(
	"loop", "Runde",
	"from", "von",
	"to", "nach",
)

// Matcher performs first-come-first-served fuzzy assignment. It is greedy on
// purpose: an earlier title can take a file that would have scored higher
// against a later one, which mirrors how the matching has always behaved.
type Matcher struct {
	minScore int
}

// Option configures a Matcher
type Option func(*Matcher)

// WithMinScore sets a minimum weighted-token-ratio score below which a title
// gets no file instead of consuming the best available candidate. The zero
// default keeps the historical assign-even-poor-matches behavior.
func WithMinScore(score int) Option {
	return func(m *Matcher) {
		m.minScore = score
	}
}

// New creates a Matcher
func New(opts ...Option) *Matcher {
	m := &Matcher{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match binds each title to at most one candidate file name and returns the
// assignments aligned with the input slice. Titles are processed in input
// order; candidates are consumed on assignment, so a repeated title gets its
// own file each time it appears. A title processed after the pool is
// exhausted gets the empty string, which is not an error. Ties keep the
// first-seen candidate.
func (m *Matcher) Match(titles []string, candidates []string) []string {
	pool := make([]string, len(candidates))
	copy(pool, candidates)

	result := make([]string, len(titles))
	for i, title := range titles {
		if len(pool) == 0 {
			continue
		}

		best, idx := m.bestCandidate(wordBridge.Replace(title), pool)
		if idx < 0 {
			continue
		}

		result[i] = best
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return result
}

// bestCandidate returns the stable argmax over the remaining pool, or -1
// when no candidate reaches the minimum score.
func (m *Matcher) bestCandidate(title string, pool []string) (string, int) {
	bestScore := -1
	bestIdx := -1
	for i, candidate := range pool {
		score := fuzzy.WRatio(title, candidate)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if m.minScore > 0 && bestScore < m.minScore {
		return "", -1
	}
	return pool[bestIdx], bestIdx
}
