package match

import (
	"sort"
)

// SuggestThreshold is the minimum normalized similarity for a suggestion.
const SuggestThreshold = 0.6

// Suggest returns up to limit candidates whose names are similar to name,
// best first. Ties keep the candidates' original order.
func Suggest(name string, candidates []string, limit int) []string {
	if limit <= 0 || name == "" {
		return nil
	}

	type scored struct {
		name  string
		score float64
		index int
	}

	var hits []scored

	for i, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(name, c)
		if score >= SuggestThreshold {
			hits = append(hits, scored{name: c, score: score, index: i})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}

	return out
}
