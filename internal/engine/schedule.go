package engine

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/providers"
)

// runGreedyPass threads anchors and greedily chosen candidates into one
// continuous timeline: fill up to each anchor in start order, place the
// anchor, then keep filling until the day-end cutoff or the pace target.
func (s *schedulerState) runGreedyPass(ctx context.Context, anchors []models.Anchor) {
	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i].StartMin < anchors[j].StartMin
	})

	s.dayStart = defaultDayStart
	if len(anchors) > 0 && anchors[0].StartMin < s.dayStart {
		s.dayStart = anchors[0].StartMin
	}
	s.cursorMin = s.dayStart

	for i := range anchors {
		s.fillSegment(ctx, anchors[i].StartMin)
		s.placeAnchor(&anchors[i])
	}

	s.fillSegment(ctx, dayEndCutoff)
}

// placeAnchor commits an anchor, shifting its start forward only when
// the previous stop plus travel would collide. Duration is preserved;
// anchors never move earlier.
func (s *schedulerState) placeAnchor(a *models.Anchor) {
	start := a.StartMin
	if last := s.lastStop(); last != nil {
		travel := s.est.Minutes(stopLocation(last), anchorLocation(a))
		if earliest := last.EndMin + travel; earliest > start {
			start = earliest
		}
	}

	stop := &models.ScheduledStop{
		Title:       a.Title,
		Category:    a.Category,
		StartMin:    start,
		EndMin:      start + a.Duration(),
		Location:    a.Location,
		Description: a.Description,
		URL:         a.URL,
		IsAnchor:    true,
	}
	s.commit(stop, true)
}

func anchorLocation(a *models.Anchor) string {
	if a.Location != "" {
		return a.Location
	}
	return a.Title
}

// fillSegment greedily fills [cursor, endMin) with candidates, falling
// back to a supplemental fetch and then filler stops when the pool has
// nothing feasible
func (s *schedulerState) fillSegment(ctx context.Context, endMin int) {
	if endMin > dayEndCutoff {
		endMin = dayEndCutoff
	}
	fetchedSupplemental := false

	for endMin-s.cursorMin >= minFlexBlock && !s.targetReached() {
		pick := s.selectCandidate(endMin)

		if pick == nil && !fetchedSupplemental {
			fetchedSupplemental = true
			if s.fetchSupplemental(ctx) {
				pick = s.selectCandidate(endMin)
			}
		}

		if pick == nil {
			if !s.placeFiller(endMin) {
				return
			}
			continue
		}

		s.commitCandidate(pick)
	}
}

// selectCandidate walks the category wheel and, for the first category
// with any feasible candidate, returns the lowest-scoring one. Pool
// iteration order is shuffled via the injected random source; ties keep
// encounter order.
func (s *schedulerState) selectCandidate(budgetEnd int) *candidate {
	pooled := s.pool.All()
	s.rng.Shuffle(len(pooled), func(i, j int) {
		pooled[i], pooled[j] = pooled[j], pooled[i]
	})

	for _, wheelCat := range s.wheel {
		var best *candidate
		for _, p := range pooled {
			if !equivalentCategory(p.Category, wheelCat) {
				continue
			}
			c, ok := s.evaluate(p, wheelCat, budgetEnd)
			if !ok {
				continue
			}
			if best == nil || c.score < best.score {
				best = c
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}

// commitCandidate converts a scored candidate into a timeline stop
func (s *schedulerState) commitCandidate(c *candidate) {
	stop := &models.ScheduledStop{
		Title:              c.place.Name,
		Category:           strings.ToLower(c.place.Category),
		StartMin:           c.startMin,
		EndMin:             c.endMin,
		Location:           placeLocation(c.place),
		Description:        c.place.Description,
		URL:                c.place.URL,
		TravelMinFromPrev:  c.travel.Minutes,
		TravelModeFromPrev: c.travel.Mode,
		Lat:                c.place.Lat,
		Lng:                c.place.Lng,
	}
	s.commit(stop, true)
	s.pool.Remove(c.poolName)
}

// fetchSupplemental asks the suggestion provider for more candidates
// biased toward the current neighborhood and still-needed categories.
// Returns true when the pool grew.
func (s *schedulerState) fetchSupplemental(ctx context.Context) bool {
	if s.set.Suggester == nil {
		return false
	}

	var wanted []string
	for _, cat := range s.wheel {
		if s.catCounts[canonicalCategory(cat)] < categoryCap(cat) {
			wanted = append(wanted, cat)
		}
	}

	hint := s.currentArea
	if hint == "" {
		hint = s.startArea
	}

	suggestions, err := s.set.Suggester.SuggestPlaces(ctx, providers.SuggestQuery{
		City:             s.trip.City,
		Vibes:            s.trip.Vibes,
		NeighborhoodHint: hint,
		WantedCategories: wanted,
		ExcludeNames:     s.pool.Names(),
		Limit:            10,
	})
	if err != nil {
		log.Printf("Supplemental place fetch failed: %v", err)
		return false
	}

	kept := suggestions[:0]
	for _, p := range suggestions {
		if !providers.AllowedCategories[strings.ToLower(p.Category)] {
			continue
		}
		if s.usedNames[models.NormalizeName(p.Name)] {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return false
	}

	before := s.pool.Len()
	s.pool.Merge(kept)
	return s.pool.Len() > before
}
