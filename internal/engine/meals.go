package engine

import (
	"strings"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/geo"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/hours"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

// Meal repair windows, minutes from midnight
const (
	lunchWindowLo  = 11*60 + 30
	lunchWindowHi  = 14 * 60
	brunchWindowLo = 10 * 60
	brunchWindowHi = 14 * 60
	dinnerWindowLo = 18 * 60
	dinnerWindowHi = 21 * 60

	kickoffMinGap = 25
	kickoffLength = 30
	mealSliceLen  = 60
)

// enforceMeals runs the explicit meal guarantees after the greedy
// pass: a morning kickoff, exactly one lunch-window stop (weekend
// brunch counts), and a dinner stop in the evening
func (s *schedulerState) enforceMeals() {
	s.ensureMorningKickoff()
	s.ensureLunch()
	s.ensureDinner()
}

// ensureMorningKickoff guarantees the day opens with coffee or
// breakfast
func (s *schedulerState) ensureMorningKickoff() {
	s.sortStops()
	if len(s.stops) == 0 {
		return
	}
	first := s.stops[0]
	if canonicalCategory(first.Category) == "coffee" || sameCategory(first.Category, "brunch") {
		return
	}

	gap := first.StartMin - s.dayStart
	if gap >= kickoffMinGap {
		if c := s.repairSearch([]string{"coffee", "breakfast"}, s.dayStart, first.StartMin, nil, first); c != nil {
			s.commitRepair(c)
			return
		}
		length := gap
		if length > kickoffLength {
			length = kickoffLength
		}
		s.commit(&models.ScheduledStop{
			Title:       "Coffee to start",
			Category:    "coffee",
			StartMin:    s.dayStart,
			EndMin:      s.dayStart + length,
			Location:    stopLocation(first),
			Description: "Grab a coffee near your first stop before the day kicks off.",
		}, false)
		return
	}

	// No room before the first stop: carve the kickoff out of it when
	// it is flexible enough
	if !first.IsAnchor && first.Duration() >= kickoffLength+minFlexBlock {
		first.StartMin += kickoffLength
		s.commit(&models.ScheduledStop{
			Title:       "Coffee to start",
			Category:    "coffee",
			StartMin:    s.dayStart,
			EndMin:      s.dayStart + kickoffLength,
			Location:    stopLocation(first),
			Description: "Grab a coffee before the day kicks off.",
		}, false)
	}
}

// ensureLunch guarantees one lunch-window stop unless a weekend brunch
// covers it or the must-dos read like a fasting day
func (s *schedulerState) ensureLunch() {
	if s.placedLunch || s.fastingRequested() {
		return
	}

	if s.trip.IsWeekend() {
		if c := s.repairSearch([]string{"brunch"}, brunchWindowLo, brunchWindowHi, nil, nil); c != nil {
			s.commitRepair(c)
			return
		}
	}
	if c := s.repairSearch([]string{"lunch"}, lunchWindowLo, lunchWindowHi, nil, nil); c != nil {
		s.commitRepair(c)
		return
	}
	s.sliceForMeal("lunch", lunchWindowLo, lunchWindowHi, "Lunch nearby",
		"Carve out a proper lunch wherever the morning leaves you.")
}

// ensureDinner guarantees an evening meal unless an anchor already
// covers dinner
func (s *schedulerState) ensureDinner() {
	for _, st := range s.stops {
		if canonicalCategory(st.Category) == "dinner" {
			return
		}
		if st.IsAnchor && isMealCategory(st.Category) && st.EndMin > dinnerWindowLo {
			return
		}
	}

	if c := s.repairSearch([]string{"dinner"}, dinnerWindowLo, dayEndCutoff, nil, nil); c != nil {
		s.commitRepair(c)
		return
	}
	s.sliceForMeal("dinner", dinnerWindowLo, dinnerWindowHi, "Dinner nearby",
		"Settle in for dinner close to your evening plans.")
}

// fastingRequested detects must-do text that opts out of lunch
func (s *schedulerState) fastingRequested() bool {
	for _, md := range s.trip.MustDos {
		text := strings.ToLower(md.Title + " " + md.Description)
		if strings.Contains(text, "fasting") ||
			strings.Contains(text, "skip lunch") ||
			strings.Contains(text, "no lunch") {
			return true
		}
	}
	return false
}

// repairSearch looks for the best category-specific candidate that fits
// into some timeline gap overlapping [windowLo, windowHi], ignoring the
// general wheel but applying the same hard filters and scoring terms.
// onlyAfter/onlyBefore restrict the considered gaps.
func (s *schedulerState) repairSearch(categories []string, windowLo, windowHi int, onlyAfter, onlyBefore *models.ScheduledStop) *repairCandidate {
	var best *repairCandidate
	for _, g := range s.findGaps() {
		if onlyAfter != nil && g.prev != onlyAfter {
			continue
		}
		if onlyBefore != nil && g.next != onlyBefore {
			continue
		}
		if g.endMin <= windowLo || g.startMin >= windowHi {
			continue
		}
		for _, raw := range s.pool.All() {
			match := false
			for _, cat := range categories {
				if sameCategory(raw.Category, cat) {
					match = true
					break
				}
			}
			if !match {
				continue
			}
			c, ok := s.evaluateInGap(raw, g, windowLo, windowHi)
			if !ok {
				continue
			}
			if best == nil || c.score < best.score {
				best = c
			}
		}
	}
	return best
}

// gap is an open interval between timeline stops (or the day
// boundaries)
type gap struct {
	prev, next *models.ScheduledStop
	startMin   int
	endMin     int
}

// findGaps scans the sorted timeline for open intervals, including the
// day-start and day-end boundaries
func (s *schedulerState) findGaps() []gap {
	s.sortStops()
	var gaps []gap

	cursor := s.dayStart
	var prev *models.ScheduledStop
	for _, st := range s.stops {
		if st.StartMin-cursor >= minFlexBlock {
			gaps = append(gaps, gap{prev: prev, next: st, startMin: cursor, endMin: st.StartMin})
		}
		if st.EndMin > cursor {
			cursor = st.EndMin
		}
		prev = st
	}
	if dayEndCutoff-cursor >= minFlexBlock {
		gaps = append(gaps, gap{prev: prev, startMin: cursor, endMin: dayEndCutoff})
	}
	return gaps
}

// repairCandidate is a gap-targeted placement proposal
type repairCandidate struct {
	place    *models.Place
	startMin int
	endMin   int
	travelIn geo.Estimate
	score    float64
}

// evaluateInGap applies the hard feasibility filters to a place for a
// specific gap and window
func (s *schedulerState) evaluateInGap(raw *models.Place, g gap, windowLo, windowHi int) (*repairCandidate, bool) {
	p := s.enriched(raw)
	cat := strings.ToLower(p.Category)

	if s.usedNames[models.NormalizeName(p.Name)] {
		return nil, false
	}
	if isFoodCategory(cat) && s.foodStops >= maxFoodStops {
		return nil, false
	}

	from := s.startArea
	if g.prev != nil {
		from = stopLocation(g.prev)
	}
	travelIn := geo.Estimate{Mode: geo.ModeWalk}
	if from != "" {
		travelIn = s.est.EstimateSync(from, placeLocation(p))
	}
	if travelIn.Minutes > nonAnchorTravelCeiling {
		return nil, false
	}

	start := g.startMin + travelIn.Minutes
	if start < windowLo {
		start = windowLo
	}
	if start > windowHi {
		return nil, false
	}

	dur := s.visitDuration(p)
	end := start + dur
	limit := g.endMin
	if g.next != nil {
		limit = g.next.StartMin - s.est.Minutes(placeLocation(p), stopLocation(g.next))
	}
	if end > limit {
		end = limit
	}
	if end-start < minFlexBlock || (p.MinMinutes > 0 && end-start < p.MinMinutes) {
		return nil, false
	}

	if hours.IsClosedDuring(p, cat, start, end, s.weekday) {
		return nil, false
	}

	return &repairCandidate{
		place:    p,
		startMin: start,
		endMin:   end,
		travelIn: travelIn,
		score:    s.repairScore(p, travelIn),
	}, true
}

// repairScore reuses the travel, neighborhood, and repetition terms of
// the main scorer for gap-targeted searches
func (s *schedulerState) repairScore(p *models.Place, travel geo.Estimate) float64 {
	score := float64(travel.Minutes) * travelWeightLate
	cat := strings.ToLower(p.Category)

	score += float64(s.catCounts[canonicalCategory(cat)]) * penaltyCategoryRepeat
	if bucket := cuisineBucket(p.Name); bucket != "" && isFoodCategory(cat) {
		weight := penaltyCuisineRepeat
		if foodForward(s.trip.Vibes) {
			weight = penaltyCuisineRepeatFood
		}
		score += float64(s.cuisineCounts[bucket]) * weight
	}
	if area := geo.AreaKey(placeLocation(p)); area != "" {
		if visits := s.areaVisits[area]; visits >= 3 {
			score += float64(visits-2) * penaltyAreaSpread
		}
	}
	if p.MinMinutes == 0 || p.Description == "" {
		score += penaltyThinRecord
	}
	return score
}

// commitRepair places a repair candidate on the timeline
func (s *schedulerState) commitRepair(c *repairCandidate) {
	s.commit(&models.ScheduledStop{
		Title:              c.place.Name,
		Category:           strings.ToLower(c.place.Category),
		StartMin:           c.startMin,
		EndMin:             c.endMin,
		Location:           placeLocation(c.place),
		Description:        c.place.Description,
		URL:                c.place.URL,
		TravelMinFromPrev:  c.travelIn.Minutes,
		TravelModeFromPrev: c.travelIn.Mode,
		Lat:                c.place.Lat,
		Lng:                c.place.Lng,
	}, true)
}

// sliceForMeal carves a meal slot out of an existing flexible stop that
// overlaps the window, when no gap-based candidate worked
func (s *schedulerState) sliceForMeal(category string, windowLo, windowHi int, title, description string) {
	s.sortStops()
	for _, st := range s.stops {
		if st.IsAnchor || isMealCategory(st.Category) {
			continue
		}
		if st.StartMin >= windowHi || st.EndMin <= windowLo {
			continue
		}
		if st.Duration() < mealSliceLen+minFlexBlock {
			continue
		}

		carveStart := st.EndMin - mealSliceLen
		if carveStart > windowHi {
			carveStart = windowHi // Carve mid-stop; the host gives up its tail
		}
		if carveStart < windowLo {
			carveStart = windowLo
		}
		if carveStart < st.StartMin+minFlexBlock {
			continue
		}

		st.EndMin = carveStart
		area := geo.AreaKey(stopLocation(st))
		s.commit(&models.ScheduledStop{
			Title:       title,
			Category:    category,
			StartMin:    carveStart,
			EndMin:      carveStart + mealSliceLen,
			Location:    area,
			Description: description,
		}, false)
		return
	}

	// Nothing is long enough to carve: the meal takes over a flexible
	// stop's slot inside the window instead of being dropped
	for i, st := range s.stops {
		if st.IsAnchor || isMealCategory(st.Category) {
			continue
		}
		if st.StartMin >= windowHi || st.EndMin <= windowLo {
			continue
		}
		start := st.StartMin
		if start < windowLo {
			start = windowLo
		}
		end := start + mealSliceLen
		if end > st.EndMin {
			end = st.EndMin
		}
		if end-start < minFlexBlock {
			continue
		}
		area := geo.AreaKey(stopLocation(st))
		s.stops = append(s.stops[:i], s.stops[i+1:]...)
		s.commit(&models.ScheduledStop{
			Title:       title,
			Category:    category,
			StartMin:    start,
			EndMin:      end,
			Location:    area,
			Description: description,
		}, false)
		return
	}
}
