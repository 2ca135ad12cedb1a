package engine

import (
	"strings"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/geo"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/hours"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

// Scoring weights; lower total wins
const (
	penaltyCategoryEquivalent = 6.0
	penaltyThinRecord         = 6.0
	penaltyOffStartArea       = 12.0
	penaltyCategoryRepeat     = 8.0
	penaltyCuisineRepeat      = 12.0
	penaltyCuisineRepeatFood  = 6.0
	penaltyAreaSpread         = 10.0 // Fourth+ distinct visit to an area
	penaltyAreaRun            = 8.0  // Third+ consecutive stop in one area
	penaltyAreaPingPong       = 10.0 // Bouncing back to the previous area
	penaltyIconicStart        = 15.0

	travelWeightEarly = 0.8
	travelWeightLate  = 0.4
)

// candidate is a feasibility-checked, scored placement proposal
type candidate struct {
	place    *models.Place
	poolName string // Original pool key, for removal on commit
	travel   geo.Estimate
	startMin int
	endMin   int
	score    float64
}

// evaluate checks a pooled place against every hard filter for the
// current cursor position and, if it survives, scores it. The second
// return is false when any filter rejects the place.
func (s *schedulerState) evaluate(raw *models.Place, wheelCat string, budgetEnd int) (*candidate, bool) {
	p := s.enriched(raw)
	cat := strings.ToLower(p.Category)

	if s.usedNames[models.NormalizeName(p.Name)] {
		return nil, false
	}
	if s.catCounts[canonicalCategory(cat)] >= categoryCap(cat) {
		return nil, false
	}
	if isFoodCategory(cat) && s.foodStops >= maxFoodStops {
		return nil, false
	}

	travel := s.travelFrom(p)
	if travel.Minutes > nonAnchorTravelCeiling {
		return nil, false
	}

	start := s.cursorMin + travel.Minutes
	if w, ok := categoryStartWindow(cat); ok {
		if start < w.lo {
			start = w.lo // Wait for the window to open; slack is repaired later
		}
		if start > w.hi {
			return nil, false
		}
	}

	// Double-meal guard: no meal right on the heels of another
	if isMealCategory(cat) {
		if last := s.lastStop(); last != nil && isMealCategory(last.Category) && start-last.EndMin < doubleMealGuardMin {
			return nil, false
		}
	}

	dur := s.visitDuration(p)
	if start+dur > budgetEnd {
		dur = budgetEnd - start
	}
	if dur < minFlexBlock || (p.MinMinutes > 0 && dur < p.MinMinutes) {
		return nil, false
	}

	// Hard skip when the oracle says closed, regardless of confidence
	if hours.IsClosedDuring(p, cat, start, start+dur, s.weekday) {
		return nil, false
	}

	return &candidate{
		place:    p,
		poolName: raw.Name,
		travel:   travel,
		startMin: start,
		endMin:   start + dur,
		score:    s.scoreCandidate(p, wheelCat, travel),
	}, true
}

// travelFrom estimates travel from the current position to a place
func (s *schedulerState) travelFrom(p *models.Place) geo.Estimate {
	from := s.currentLoc
	if from == "" {
		from = s.startArea
	}
	if from == "" {
		return geo.Estimate{Minutes: 0, Mode: geo.ModeWalk}
	}
	return s.est.EstimateSync(from, placeLocation(p))
}

// visitDuration sizes a visit from the category base and the place's
// own bounds, scaled by pace
func (s *schedulerState) visitDuration(p *models.Place) int {
	dur := int(float64(baseDuration(p.Category)) * s.trip.Pace.DurationFactor())
	if p.MinMinutes > 0 && dur < p.MinMinutes {
		dur = p.MinMinutes
	}
	if p.MaxMinutes > 0 && dur > p.MaxMinutes {
		dur = p.MaxMinutes
	}
	return dur
}

// scoreCandidate combines the soft preference terms; lower is better
func (s *schedulerState) scoreCandidate(p *models.Place, wheelCat string, travel geo.Estimate) float64 {
	score := 0.0
	cat := strings.ToLower(p.Category)

	// Category match: exact free, equivalent lenient
	if !sameCategory(cat, wheelCat) && equivalentCategory(cat, wheelCat) {
		score += penaltyCategoryEquivalent
	}

	// Thin records rank behind well-described ones
	if p.MinMinutes == 0 || p.Description == "" {
		score += penaltyThinRecord
	}

	// Stay near the preferred starting area for the first few stops
	if s.startArea != "" && s.stopCount() < earlyStopCount {
		if geo.AreaKey(placeLocation(p)) != s.startArea {
			score += penaltyOffStartArea
		}
	}

	// Repetition
	score += float64(s.catCounts[canonicalCategory(cat)]) * penaltyCategoryRepeat
	if bucket := cuisineBucket(p.Name); bucket != "" && isFoodCategory(cat) {
		weight := penaltyCuisineRepeat
		if foodForward(s.trip.Vibes) {
			weight = penaltyCuisineRepeatFood
		}
		score += float64(s.cuisineCounts[bucket]) * weight
	}

	// Neighborhood clustering
	area := geo.AreaKey(placeLocation(p))
	if area != "" {
		if visits := s.areaVisits[area]; area != s.currentArea && visits >= 3 {
			score += float64(visits-2) * penaltyAreaSpread
		}
		if area == s.currentArea && s.areaRun >= 2 {
			score += float64(s.areaRun-1) * penaltyAreaRun
		}
		if area == s.prevArea && area != s.currentArea {
			score += penaltyAreaPingPong
		}
	}

	// Travel, weighted heavier early in the day
	weight := travelWeightLate
	if s.stopCount() < earlyStopCount {
		weight = travelWeightEarly
	}
	score += float64(travel.Minutes) * weight

	// Discourage the generic tourist opener unless vibes ask for it
	if s.stopCount() == 0 && isIconicStart(p.Name) && !vibesWantViews(s.trip.Vibes) {
		score += penaltyIconicStart
	}

	// Vibe-to-category affinity
	for _, v := range s.trip.Vibes {
		if adj, ok := vibeAffinity[strings.ToLower(v)][cat]; ok {
			score += adj
		}
	}

	return score
}

func vibesWantViews(vibes []string) bool {
	for _, v := range vibes {
		switch strings.ToLower(v) {
		case "views", "classic":
			return true
		}
	}
	return false
}
