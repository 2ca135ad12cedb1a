package catalog

import (
	"context"
	"log"
	"sync"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/providers"
)

// enrichBatchLimit bounds how many places get external lookups per run
const enrichBatchLimit = 50

// Arena holds enriched copies of catalog places keyed by normalized
// name. The original catalog snapshot is never mutated, so concurrent
// runs can share it safely.
type Arena struct {
	byName map[string]*models.Place
}

// Lookup returns the enriched view of a place, falling back to the
// given original when no enrichment happened
func (a *Arena) Lookup(original *models.Place) *models.Place {
	if a == nil {
		return original
	}
	if enriched, ok := a.byName[models.NormalizeName(original.Name)]; ok {
		return enriched
	}
	return original
}

// Enrich fetches opening hours, branch data, and coordinates for up to
// enrichBatchLimit pooled places concurrently. Lookups only fill
// previously-empty fields; failures are logged and skipped.
func Enrich(ctx context.Context, pool *Pool, set providers.Set, city string) *Arena {
	arena := &Arena{byName: make(map[string]*models.Place)}
	if set.Hours == nil && set.Branches == nil && set.Geocoder == nil {
		return arena
	}

	candidates := pool.All()
	if len(candidates) > enrichBatchLimit {
		candidates = candidates[:enrichBatchLimit]
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, place := range candidates {
		if place.Hours != nil && place.HasCoordinates() {
			continue
		}
		wg.Add(1)
		go func(p *models.Place) {
			defer wg.Done()
			enriched := enrichOne(ctx, p, set, city)
			if enriched == nil {
				return
			}
			mu.Lock()
			arena.byName[models.NormalizeName(p.Name)] = enriched
			mu.Unlock()
		}(place)
	}
	wg.Wait()
	return arena
}

// enrichOne returns an enriched copy of p, or nil when nothing new was
// learned. Empty fields only; existing catalog data always wins.
func enrichOne(ctx context.Context, p *models.Place, set providers.Set, city string) *models.Place {
	cp := *p
	changed := false

	if set.Hours != nil && cp.Hours == nil {
		res, err := set.Hours.LookupHours(ctx, cp.Name, city)
		if err != nil {
			log.Printf("Hours lookup failed for %s: %v", cp.Name, err)
		} else if res != nil {
			if res.Hours != nil {
				cp.Hours = res.Hours
				changed = true
			}
			if cp.URL == "" && res.Website != "" {
				cp.URL = res.Website
				changed = true
			}
			if res.Branch != nil {
				applyBranch(&cp, res.Branch)
				changed = true
			}
		}
	}

	if set.Branches != nil && !cp.HasCoordinates() {
		branch, err := set.Branches.ResolveBestBranch(ctx, cp.Name, city, cp.Neighborhood)
		if err != nil {
			log.Printf("Branch resolution failed for %s: %v", cp.Name, err)
		} else if branch != nil {
			applyBranch(&cp, branch)
			changed = true
		}
	}

	// Geocode as a last resort so the place still gets a map pin
	if set.Geocoder != nil && !cp.HasCoordinates() {
		query := cp.Name
		if cp.Neighborhood != "" {
			query += ", " + cp.Neighborhood
		}
		if city != "" {
			query += ", " + city
		}
		ll, err := set.Geocoder.Geocode(ctx, query)
		if err != nil {
			log.Printf("Geocoding failed for %s: %v", cp.Name, err)
		} else if ll != nil && (ll.Lat != 0 || ll.Lng != 0) {
			cp.Lat = ll.Lat
			cp.Lng = ll.Lng
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return &cp
}

func applyBranch(p *models.Place, b *providers.Branch) {
	if p.Neighborhood == "" && b.Neighborhood != "" {
		p.Neighborhood = b.Neighborhood
	}
	if !p.HasCoordinates() && (b.Lat != 0 || b.Lng != 0) {
		p.Lat = b.Lat
		p.Lng = b.Lng
	}
}
