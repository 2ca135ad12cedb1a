package geo

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Travel modes
const (
	ModeWalk    = "walk"
	ModeTransit = "transit"
)

// Speed and clamp constants for the centroid model
const (
	walkSpeedKmh    = 4.8
	transitSpeedKmh = 18.0

	walkMinClamp    = 8
	walkMaxClamp    = 50
	transitMinClamp = 24
	transitMaxClamp = 55

	transitOverheadMin    = 12 // Wait + station access
	boroughCrossingMin    = 8
	walkDistanceCeilingKm = 2.4

	// Fallbacks when neither location resolves to a centroid
	sameBoroughFallbackMin  = 20
	crossBoroughFallbackMin = 28
	outerBoroughExtraMin    = 4 // Bronx / Staten Island hops
	villageHopMin           = 14
)

// MatrixProvider answers real walking/transit durations between two
// free-text locations. Implementations may return (nil, nil) for
// "no answer"; errors are treated the same way.
type MatrixProvider interface {
	TravelDurations(ctx context.Context, origin, destination string, departure time.Time) (*Durations, error)
}

// Durations is a travel-matrix answer; zero means "not provided"
type Durations struct {
	WalkingMinutes int
	TransitMinutes int
}

// Estimate is a travel estimate with its chosen mode
type Estimate struct {
	Minutes int
	Mode    string
}

// Estimator converts location string pairs into travel estimates.
// It owns its memoization cache so concurrent planning runs stay
// isolated; construct one per run (or share deliberately).
type Estimator struct {
	matrix  MatrixProvider
	weekday time.Weekday

	mu   sync.Mutex
	memo map[string]Estimate
}

// NewEstimator creates an estimator. matrix may be nil, in which case
// only the centroid/heuristic model is used.
func NewEstimator(matrix MatrixProvider, weekday time.Weekday) *Estimator {
	return &Estimator{
		matrix:  matrix,
		weekday: weekday,
		memo:    make(map[string]Estimate),
	}
}

// Minutes returns the estimated travel minutes between two locations
// using the synchronous centroid model. Never fails; unresolvable
// locations fall back to borough heuristics.
func (e *Estimator) Minutes(origin, destination string) int {
	return e.EstimateSync(origin, destination).Minutes
}

// EstimateSync computes the centroid/heuristic estimate without
// consulting the external matrix provider. Symmetric in its arguments.
func (e *Estimator) EstimateSync(origin, destination string) Estimate {
	if normalizeLocation(origin) == normalizeLocation(destination) {
		return Estimate{Minutes: 0, Mode: ModeWalk}
	}

	a, okA := LookupArea(origin)
	b, okB := LookupArea(destination)
	if okA && okB {
		return centroidEstimate(a, b)
	}
	return fallbackEstimate(origin, destination)
}

// Refined returns the best available estimate, preferring the external
// matrix provider when it answers. departMin is minutes from midnight
// on the planning date; provider failures silently fall back to the
// synchronous model.
func (e *Estimator) Refined(ctx context.Context, origin, destination string, departMin int) Estimate {
	if normalizeLocation(origin) == normalizeLocation(destination) {
		return Estimate{Minutes: 0, Mode: ModeWalk}
	}
	if e.matrix == nil {
		return e.EstimateSync(origin, destination)
	}

	key := fmt.Sprintf("%s|%s|%d|%d", normalizeLocation(origin), normalizeLocation(destination), e.weekday, departMin/60)
	e.mu.Lock()
	if cached, ok := e.memo[key]; ok {
		e.mu.Unlock()
		return cached
	}
	e.mu.Unlock()

	est := e.EstimateSync(origin, destination)
	departure := departureTime(e.weekday, departMin)
	if d, err := e.matrix.TravelDurations(ctx, origin, destination, departure); err == nil && d != nil {
		if refined, ok := pickMatrixMode(d); ok {
			est = refined
		}
	}

	e.mu.Lock()
	e.memo[key] = est
	e.mu.Unlock()
	return est
}

// pickMatrixMode chooses walk vs transit from a matrix answer:
// walk when it is short or not meaningfully slower than transit.
func pickMatrixMode(d *Durations) (Estimate, bool) {
	walk := d.WalkingMinutes
	transit := d.TransitMinutes
	switch {
	case walk > 0 && (walk <= 20 || (transit > 0 && walk <= transit+5)):
		return Estimate{Minutes: walk, Mode: ModeWalk}, true
	case transit > 0:
		return Estimate{Minutes: transit, Mode: ModeTransit}, true
	case walk > 0:
		return Estimate{Minutes: walk, Mode: ModeWalk}, true
	}
	return Estimate{}, false
}

func centroidEstimate(a, b Area) Estimate {
	km := HaversineDistance(a.Lat, a.Lng, b.Lat, b.Lng) / 1000.0
	sameBorough := a.Borough == b.Borough

	if sameBorough && km <= walkDistanceCeilingKm {
		min := int(km / walkSpeedKmh * 60)
		return Estimate{Minutes: clamp(min, walkMinClamp, walkMaxClamp), Mode: ModeWalk}
	}

	min := int(km/transitSpeedKmh*60) + transitOverheadMin
	if !sameBorough {
		min += boroughCrossingMin
	}
	return Estimate{Minutes: clamp(min, transitMinClamp, transitMaxClamp), Mode: ModeTransit}
}

func fallbackEstimate(origin, destination string) Estimate {
	if isVillage(origin) && isVillage(destination) {
		return Estimate{Minutes: villageHopMin, Mode: ModeWalk}
	}

	ba := InferBorough(origin)
	bb := InferBorough(destination)
	if ba == bb {
		return Estimate{Minutes: sameBoroughFallbackMin, Mode: ModeWalk}
	}

	min := crossBoroughFallbackMin
	if ba == BoroughBronx || bb == BoroughBronx || ba == BoroughStaten || bb == BoroughStaten {
		min += outerBoroughExtraMin
	}
	return Estimate{Minutes: min, Mode: ModeTransit}
}

// departureTime builds a concrete departure timestamp on the next
// occurrence of the planning weekday, for time-of-day aware providers
func departureTime(wd time.Weekday, departMin int) time.Time {
	now := time.Now()
	daysAhead := (int(wd) - int(now.Weekday()) + 7) % 7
	day := now.AddDate(0, 0, daysAhead)
	return time.Date(day.Year(), day.Month(), day.Day(), departMin/60, departMin%60, 0, 0, time.Local)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
