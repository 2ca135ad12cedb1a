package providers

import (
	"context"
	"strings"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

// StaticSuggester serves supplemental candidates from a fixed seed
// list. It is the offline half of the suggestion provider; an
// AI-backed implementation can wrap it and merge its results.
type StaticSuggester struct {
	seed []models.Place
}

// NewStaticSuggester builds a suggester over the given seed places.
// Entries with a category outside AllowedCategories are dropped at
// construction so every suggestion is placeable.
func NewStaticSuggester(seed []models.Place) *StaticSuggester {
	kept := make([]models.Place, 0, len(seed))
	for _, p := range seed {
		if AllowedCategories[strings.ToLower(p.Category)] {
			kept = append(kept, p)
		}
	}
	return &StaticSuggester{seed: kept}
}

// SuggestPlaces filters the seed list by wanted categories, excluded
// names, and (loosely) the neighborhood hint
func (s *StaticSuggester) SuggestPlaces(_ context.Context, q SuggestQuery) ([]models.Place, error) {
	wanted := make(map[string]bool, len(q.WantedCategories))
	for _, c := range q.WantedCategories {
		wanted[strings.ToLower(c)] = true
	}
	excluded := make(map[string]bool, len(q.ExcludeNames))
	for _, n := range q.ExcludeNames {
		excluded[models.NormalizeName(n)] = true
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	var out []models.Place
	var offHint []models.Place
	hint := strings.ToLower(strings.TrimSpace(q.NeighborhoodHint))
	for _, p := range s.seed {
		if len(wanted) > 0 && !wanted[strings.ToLower(p.Category)] {
			continue
		}
		if excluded[models.NormalizeName(p.Name)] {
			continue
		}
		// Hint-matching places first, the rest as spillover
		if hint != "" && !strings.Contains(strings.ToLower(p.Neighborhood), hint) {
			offHint = append(offHint, p)
			continue
		}
		out = append(out, p)
	}
	out = append(out, offHint...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
