package engine

import (
	"github.com/SamTurer/travelbuddy-next-mvp/internal/geo"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

// fillGaps scans for leftover gaps of at least minFlexBlock and inserts
// best-fit candidates sized to the available window, rescanning after
// every insert until a full pass commits nothing. Each insert consumes
// a pooled place, so the loop terminates.
func (s *schedulerState) fillGaps() {
	for {
		inserted := false
		for _, g := range s.findGaps() {
			if c := s.bestGapCandidate(g); c != nil {
				s.commitRepair(c)
				inserted = true
				break // Timeline changed; rescan gaps
			}
		}
		if !inserted {
			return
		}
	}
}

// bestGapCandidate walks the wheel restricted to one gap and returns
// the best-scoring feasible candidate, or nil
func (s *schedulerState) bestGapCandidate(g gap) *repairCandidate {
	for _, wheelCat := range s.wheel {
		var best *repairCandidate
		for _, raw := range s.pool.All() {
			if !equivalentCategory(raw.Category, wheelCat) {
				continue
			}
			if s.catCounts[canonicalCategory(raw.Category)] >= categoryCap(raw.Category) {
				continue
			}
			c, ok := s.evaluateInGap(raw, g, g.startMin, g.endMin-minFlexBlock)
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

// pruneOrphans removes non-anchor, non-meal stops that ended up alone
// in their neighborhood, as long as the schedule stays at or above the
// pace minimum. Lone detours cost travel without the payoff of a
// clustered visit.
func (s *schedulerState) pruneOrphans() {
	s.sortStops()

	areaCounts := make(map[string]int)
	for _, st := range s.stops {
		if key := geo.AreaKey(stopLocation(st)); key != "" {
			areaCounts[key]++
		}
	}

	total := len(s.stops)
	removed := 0
	kept := make([]*models.ScheduledStop, 0, total)
	for _, st := range s.stops {
		key := geo.AreaKey(stopLocation(st))
		orphan := key != "" && areaCounts[key] == 1
		removable := orphan && !st.IsAnchor && !isMealCategory(st.Category) &&
			canonicalCategory(st.Category) != "coffee"
		if removable && total-removed-1 >= s.trip.Pace.MinStops() {
			areaCounts[key]--
			removed++
			continue
		}
		kept = append(kept, st)
	}
	s.stops = kept
}
