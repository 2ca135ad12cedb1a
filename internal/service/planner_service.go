package service

import (
	"context"
	"fmt"
	"log"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/catalog"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/config"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/engine"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/providers"
)

// PlannerService handles itinerary planning business logic
type PlannerService struct {
	places []models.Place
	eng    *engine.Engine
}

// NewPlannerService creates a planner over an already-loaded catalog
func NewPlannerService(places []models.Place, set providers.Set) *PlannerService {
	return &PlannerService{
		places: places,
		eng:    engine.New(places, engine.WithProviders(set)),
	}
}

// LoadCatalog reads the catalog per config: the sqlite store when
// DB_PATH is set and non-empty, else the JSON file. A JSON-seeded
// empty db gets populated on first use.
func LoadCatalog(cfg *config.Config) ([]models.Place, error) {
	if cfg.DBPath != "" {
		store, err := catalog.OpenStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog store: %w", err)
		}
		defer store.Close()

		count, err := store.Count()
		if err != nil {
			return nil, err
		}
		if count == 0 {
			seed, err := catalog.LoadFile(cfg.CatalogPath)
			if err != nil {
				return nil, fmt.Errorf("catalog db is empty and seeding failed: %w", err)
			}
			if err := store.Seed(seed); err != nil {
				return nil, err
			}
			log.Printf("Seeded catalog db with %d places from %s", len(seed), cfg.CatalogPath)
		}
		return store.LoadAll()
	}
	return catalog.LoadFile(cfg.CatalogPath)
}

// Plan produces an itinerary for the trip inputs
func (s *PlannerService) Plan(ctx context.Context, trip models.TripInput) (*engine.Itinerary, error) {
	return s.eng.Plan(ctx, trip)
}

// ReplaceStop performs a mood-driven single-stop swap
func (s *PlannerService) ReplaceStop(ctx context.Context, req engine.ReplaceRequest) (*engine.Itinerary, error) {
	return s.eng.ReplaceStop(ctx, req)
}

// Catalog returns the loaded place catalog
func (s *PlannerService) Catalog() []models.Place {
	return s.places
}
