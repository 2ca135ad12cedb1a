// Package engine implements the single-day itinerary scheduler: a
// greedy, constraint-driven allocator that places catalog POIs into a
// timeline around fixed anchor events.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/catalog"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/geo"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/hours"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/providers"
)

// The two caller-facing error classes. Infeasibility and provider
// failures degrade silently instead.
var (
	ErrInvalidInput = errors.New("invalid trip input")
	ErrEmptyCatalog = errors.New("poi catalog is empty or unusable")
)

// Engine plans single-day itineraries over a static place catalog
type Engine struct {
	places []models.Place
	set    providers.Set
	seed   *int64
}

// Option configures an Engine
type Option func(*Engine)

// WithProviders wires the external service set
func WithProviders(set providers.Set) Option {
	return func(e *Engine) { e.set = set }
}

// WithSeed fixes the random source used for candidate-pool shuffling,
// restoring full determinism for tests. Without it the seed derives
// from the trip date.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = &seed }
}

// New creates an engine over the given catalog snapshot
func New(places []models.Place, opts ...Option) *Engine {
	e := &Engine{places: places}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Itinerary is a planning result: the user-facing stop list plus the
// internal timeline, which callers pass back for single-stop edits
type Itinerary struct {
	RunID    string                 `json:"runId"`
	Stops    []models.OutputStop    `json:"stops"`
	Timeline []models.ScheduledStop `json:"timeline"`
}

// Plan produces a full day itinerary for the trip inputs.
// Returns ErrInvalidInput for malformed inputs and ErrEmptyCatalog when
// no usable place exists; everything else degrades to a shorter or
// filler-padded day.
func (e *Engine) Plan(ctx context.Context, trip models.TripInput) (*Itinerary, error) {
	if err := trip.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	weekday, err := trip.Weekday()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	usable := usablePlaces(e.places)
	if len(usable) == 0 {
		return nil, ErrEmptyCatalog
	}
	pool := catalog.NewPool(usable)

	trip.MustDos = e.enrichMustDos(ctx, trip)

	arena := catalog.Enrich(ctx, pool, e.set, trip.City)
	est := geo.NewEstimator(e.set.Matrix, weekday)

	seed := int64(dateSeed(trip.Date))
	if e.seed != nil {
		seed = *e.seed
	}
	rng := rand.New(rand.NewSource(seed))

	state := newSchedulerState(&trip, weekday, pool, arena, est, e.set, rng)
	state.startArea = preferredStartArea(pool, trip.Vibes, trip.Date)
	if trip.FocusArea != "" {
		state.startArea = geo.AreaKey(trip.FocusArea)
	}

	anchors := buildAnchors(&trip, pool)
	state.runGreedyPass(ctx, anchors)
	state.enforceMeals()
	state.fillGaps()
	state.pruneOrphans()

	state.finalizeTravel()
	state.refineTravel(ctx)
	state.finalizeTravel()

	stops := formatStops(state.stops)
	stops = polish(ctx, e.set.Polisher, stops, providers.PolishMeta{
		City:  trip.City,
		Vibes: trip.Vibes,
		Pace:  trip.Pace,
	})

	timeline := make([]models.ScheduledStop, len(state.stops))
	for i, st := range state.stops {
		timeline[i] = *st
	}

	return &Itinerary{
		RunID:    uuid.NewString(),
		Stops:    stops,
		Timeline: timeline,
	}, nil
}

// enrichMustDos runs the external must-do enricher, passing the raw
// entries through untouched when it is absent or fails
func (e *Engine) enrichMustDos(ctx context.Context, trip models.TripInput) []models.MustDo {
	if e.set.Enricher == nil || len(trip.MustDos) == 0 {
		return trip.MustDos
	}
	enriched, err := e.set.Enricher.EnrichMustDos(ctx, trip.MustDos, providers.EnrichMeta{
		City:  trip.City,
		Date:  trip.Date,
		Vibes: trip.Vibes,
	})
	if err != nil || len(enriched) != len(trip.MustDos) {
		if err != nil {
			log.Printf("Must-do enrichment failed: %v", err)
		}
		return trip.MustDos
	}
	return enriched
}

func usablePlaces(places []models.Place) []models.Place {
	usable := make([]models.Place, 0, len(places))
	for _, p := range places {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Category) == "" {
			continue
		}
		usable = append(usable, p)
	}
	return usable
}

// ReplaceRequest asks for a single mood-driven stop swap on an
// existing itinerary
type ReplaceRequest struct {
	Trip        models.TripInput       `json:"trip"`
	Timeline    []models.ScheduledStop `json:"timeline" binding:"required"`
	TargetTitle string                 `json:"targetTitle" binding:"required"`
	Mood        string                 `json:"mood" binding:"required"`
}

// moodCategories maps a mood to the categories that satisfy it
var moodCategories = map[string][]string{
	"hungry":      {"lunch", "brunch", "dinner", "snack", "dessert", "breakfast"},
	"thirsty":     {"bar", "drinks", "coffee"},
	"caffeinated": {"coffee"},
	"culture":     {"museum", "gallery"},
	"outdoors":    {"park", "walk", "view"},
}

// ReplaceStop swaps the targeted stop for the best mood-matching
// catalog place that fits the same time slot, preserving every other
// stop. When nothing feasible exists the itinerary comes back
// unchanged.
func (e *Engine) ReplaceStop(ctx context.Context, req ReplaceRequest) (*Itinerary, error) {
	if err := req.Trip.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	weekday, err := req.Trip.Weekday()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	categories, ok := moodCategories[strings.ToLower(strings.TrimSpace(req.Mood))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown mood %q", ErrInvalidInput, req.Mood)
	}

	timeline := make([]*models.ScheduledStop, len(req.Timeline))
	used := make(map[string]bool, len(req.Timeline))
	targetIdx := -1
	for i := range req.Timeline {
		cp := req.Timeline[i]
		timeline[i] = &cp
		used[models.NormalizeName(cp.Title)] = true
		if targetIdx < 0 && models.NormalizeName(cp.Title) == models.NormalizeName(req.TargetTitle) {
			targetIdx = i
		}
	}
	if targetIdx < 0 {
		return nil, fmt.Errorf("%w: stop %q not on the timeline", ErrInvalidInput, req.TargetTitle)
	}
	target := timeline[targetIdx]
	if target.IsAnchor {
		return nil, fmt.Errorf("%w: cannot replace anchor %q", ErrInvalidInput, target.Title)
	}

	est := geo.NewEstimator(e.set.Matrix, weekday)
	var prev, next *models.ScheduledStop
	if targetIdx > 0 {
		prev = timeline[targetIdx-1]
	}
	if targetIdx+1 < len(timeline) {
		next = timeline[targetIdx+1]
	}

	best := e.bestReplacement(est, weekday, categories, used, target, prev, next)
	if best != nil {
		replaceInPlace(est, target, best, prev)
	}

	stops := formatStops(timeline)
	out := make([]models.ScheduledStop, len(timeline))
	for i, st := range timeline {
		out[i] = *st
	}
	return &Itinerary{RunID: uuid.NewString(), Stops: stops, Timeline: out}, nil
}

// bestReplacement finds the lowest-travel mood-matching place that can
// occupy the target's slot with both adjacent hops inside the
// non-anchor travel ceiling
func (e *Engine) bestReplacement(est *geo.Estimator, weekday time.Weekday, categories []string, used map[string]bool, target, prev, next *models.ScheduledStop) *models.Place {
	var best *models.Place
	bestCost := 0

	for i := range e.places {
		p := &e.places[i]
		if !categoryIn(p.Category, categories) || used[models.NormalizeName(p.Name)] {
			continue
		}
		if w, ok := categoryStartWindow(strings.ToLower(p.Category)); ok {
			if target.StartMin < w.lo || target.StartMin > w.hi {
				continue
			}
		}

		cost := 0
		if prev != nil {
			in := est.Minutes(stopLocation(prev), placeLocation(p))
			if in > nonAnchorTravelCeiling || target.StartMin < prev.EndMin+in {
				continue
			}
			cost += in
		}
		if next != nil {
			outMin := est.Minutes(placeLocation(p), stopLocation(next))
			if outMin > nonAnchorTravelCeiling || next.StartMin < target.EndMin+outMin {
				continue
			}
			cost += outMin
		}
		if hours.IsClosedDuring(p, strings.ToLower(p.Category), target.StartMin, target.EndMin, weekday) {
			continue
		}
		if best == nil || cost < bestCost {
			best = p
			bestCost = cost
		}
	}
	return best
}

func replaceInPlace(est *geo.Estimator, target *models.ScheduledStop, p *models.Place, prev *models.ScheduledStop) {
	target.Title = p.Name
	target.Category = strings.ToLower(p.Category)
	target.Location = placeLocation(p)
	target.Description = p.Description
	target.URL = p.URL
	target.Lat = p.Lat
	target.Lng = p.Lng
	if prev != nil {
		hop := est.EstimateSync(stopLocation(prev), placeLocation(p))
		target.TravelMinFromPrev = hop.Minutes
		target.TravelModeFromPrev = hop.Mode
	}
}

func categoryIn(cat string, categories []string) bool {
	for _, c := range categories {
		if strings.EqualFold(cat, c) {
			return true
		}
	}
	return false
}
