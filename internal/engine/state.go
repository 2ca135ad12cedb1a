package engine

import (
	"math/rand"
	"sort"
	"time"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/catalog"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/geo"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/providers"
)

// Day shape constants, minutes from midnight
const (
	defaultDayStart = 9 * 60  // 09:00
	dayEndCutoff    = 22 * 60 // 22:00

	minFlexBlock = 20 // Smallest gap worth filling

	nonAnchorTravelCeiling = 60  // Max travel-in for a greedy pick
	anchorTravelCeiling    = 120 // Anchors tolerate longer hauls

	doubleMealGuardMin = 90 // Min gap after a meal before the next one

	earlyStopCount = 3 // "Early in the day" for scoring purposes
)

// schedulerState carries all mutable scheduling state through the
// greedy pass, meal enforcement, and gap filling. Passing it
// explicitly keeps the data dependencies of each sub-routine visible.
type schedulerState struct {
	trip    *models.TripInput
	weekday time.Weekday
	wheel   []string

	stops []*models.ScheduledStop // Sorted by StartMin

	pool  *catalog.Pool
	arena *catalog.Arena
	est   *geo.Estimator
	set   providers.Set
	rng   *rand.Rand

	usedNames     map[string]bool
	catCounts     map[string]int // Keyed by canonical category
	cuisineCounts map[string]int
	areaVisits    map[string]int // Distinct visits per area key

	currentArea string
	prevArea    string // Previous distinct area, for the anti-ping-pong term
	areaRun     int    // Consecutive stops in currentArea

	foodStops   int
	placedLunch bool // A lunch-or-brunch has been placed

	cursorMin  int
	currentLoc string
	startArea  string // Data-driven preferred starting area

	dayStart int
}

func newSchedulerState(trip *models.TripInput, weekday time.Weekday, pool *catalog.Pool, arena *catalog.Arena, est *geo.Estimator, set providers.Set, rng *rand.Rand) *schedulerState {
	return &schedulerState{
		trip:          trip,
		weekday:       weekday,
		wheel:         wheelFor(trip.Vibes),
		pool:          pool,
		arena:         arena,
		est:           est,
		set:           set,
		rng:           rng,
		usedNames:     make(map[string]bool),
		catCounts:     make(map[string]int),
		cuisineCounts: make(map[string]int),
		areaVisits:    make(map[string]int),
		dayStart:      defaultDayStart,
	}
}

// enriched returns the enrichment-arena view of a pooled place
func (s *schedulerState) enriched(p *models.Place) *models.Place {
	return s.arena.Lookup(p)
}

// stopLocation is the location string a stop contributes as the
// "current position" for travel estimates
func stopLocation(st *models.ScheduledStop) string {
	if st.Location != "" {
		return st.Location
	}
	return st.Title
}

// placeLocation is the location used for travel estimates to a place
func placeLocation(p *models.Place) string {
	if p.Neighborhood != "" {
		return p.Neighborhood
	}
	return p.Name
}

// sortStops keeps the timeline ordered by start time
func (s *schedulerState) sortStops() {
	sort.SliceStable(s.stops, func(i, j int) bool {
		return s.stops[i].StartMin < s.stops[j].StartMin
	})
}

// insertStop adds a stop keeping the timeline sorted
func (s *schedulerState) insertStop(st *models.ScheduledStop) {
	s.stops = append(s.stops, st)
	s.sortStops()
}

// lastStop returns the final stop on the timeline, or nil
func (s *schedulerState) lastStop() *models.ScheduledStop {
	if len(s.stops) == 0 {
		return nil
	}
	return s.stops[len(s.stops)-1]
}

// commit records a placed stop: usage counters, neighborhood run
// tracking, the location pointer, and the time cursor. Leftover slack
// is left for the gap-filling pass.
func (s *schedulerState) commit(st *models.ScheduledStop, fromPool bool) {
	s.insertStop(st)

	s.usedNames[models.NormalizeName(st.Title)] = true
	s.catCounts[canonicalCategory(st.Category)]++
	if bucket := cuisineBucket(st.Title); bucket != "" && isFoodCategory(st.Category) {
		s.cuisineCounts[bucket]++
	}
	if isFoodCategory(st.Category) {
		s.foodStops++
	}
	if canonicalCategory(st.Category) == "lunch" {
		s.placedLunch = true
	}

	area := geo.AreaKey(stopLocation(st))
	if area != "" {
		if area == s.currentArea {
			s.areaRun++
		} else {
			if s.currentArea != "" {
				s.prevArea = s.currentArea
			}
			s.currentArea = area
			s.areaRun = 1
			s.areaVisits[area]++
		}
	}

	s.currentLoc = stopLocation(st)
	if st.EndMin > s.cursorMin {
		s.cursorMin = st.EndMin
	}

	if fromPool {
		s.pool.Remove(st.Title)
	}
}

// stopCount returns the number of timeline stops (anchors included)
func (s *schedulerState) stopCount() int {
	return len(s.stops)
}

// targetReached reports whether the pace-derived stop target is met
func (s *schedulerState) targetReached() bool {
	return s.stopCount() >= s.trip.Pace.TargetStops()
}
