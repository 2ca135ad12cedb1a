// Package providers defines the narrow external-service boundary the
// planning engine consumes. Every provider is optional: a nil provider
// or a failed call means "proceed without that enrichment".
package providers

import (
	"context"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/geo"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

// Branch is a resolved physical location for a (possibly chain) place
type Branch struct {
	Neighborhood string  `json:"neighborhood,omitempty"`
	Address      string  `json:"address,omitempty"`
	Lat          float64 `json:"lat,omitempty"`
	Lng          float64 `json:"lng,omitempty"`
}

// HoursResult is an opening-hours lookup answer
type HoursResult struct {
	Hours   *models.OpeningHours
	Website string
	Branch  *Branch
}

// LatLng is a geocoding answer
type LatLng struct {
	Lat float64
	Lng float64
}

// HoursLookup fetches structured opening hours for a named place.
// A nil result with nil error means "not found".
type HoursLookup interface {
	LookupHours(ctx context.Context, name, city string) (*HoursResult, error)
}

// BranchResolver picks the best branch of a chain near an area hint
type BranchResolver interface {
	ResolveBestBranch(ctx context.Context, name, city, areaHint string) (*Branch, error)
}

// Geocoder resolves free-text locations to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, location string) (*LatLng, error)
}

// SuggestQuery describes what supplemental places are wanted
type SuggestQuery struct {
	City             string
	Vibes            []string
	NeighborhoodHint string
	WantedCategories []string
	ExcludeNames     []string
	Limit            int
}

// PlaceSuggester fetches supplemental candidate places on demand
type PlaceSuggester interface {
	SuggestPlaces(ctx context.Context, q SuggestQuery) ([]models.Place, error)
}

// PolishMeta is context for the copy-polish call
type PolishMeta struct {
	City  string
	Vibes []string
	Pace  models.Pace
}

// CopyPolisher rewrites stop descriptions for tone. Implementations
// must preserve stop order, times, and count; callers discard any
// response that deviates.
type CopyPolisher interface {
	PolishTimeline(ctx context.Context, stops []models.OutputStop, meta PolishMeta) ([]models.OutputStop, error)
}

// EnrichMeta is context for must-do enrichment
type EnrichMeta struct {
	City  string
	Date  string
	Vibes []string
}

// MustDoEnricher turns raw must-do entries into structured ones with
// inferred title/time/location/category/duration
type MustDoEnricher interface {
	EnrichMustDos(ctx context.Context, entries []models.MustDo, meta EnrichMeta) ([]models.MustDo, error)
}

// Set bundles every external provider the engine can consult.
// Any field may be nil; the zero Set disables all external calls,
// which is the deterministic configuration tests use.
type Set struct {
	Hours     HoursLookup
	Branches  BranchResolver
	Matrix    geo.MatrixProvider
	Geocoder  Geocoder
	Suggester PlaceSuggester
	Polisher  CopyPolisher
	Enricher  MustDoEnricher
}

// Disabled returns a provider set with every external call turned off
func Disabled() Set {
	return Set{}
}

// AllowedCategories is the fixed category vocabulary suggested places
// must use; suggestions outside it are discarded.
var AllowedCategories = map[string]bool{
	"coffee": true, "breakfast": true, "brunch": true, "lunch": true,
	"dinner": true, "bar": true, "drinks": true, "dessert": true,
	"snack": true, "museum": true, "gallery": true, "landmark": true,
	"view": true, "park": true, "walk": true, "market": true,
	"shopping": true, "music": true, "custom": true,
}
