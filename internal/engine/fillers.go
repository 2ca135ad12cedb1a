package engine

import (
	"fmt"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

// Filler sizing bounds
const (
	fillerMaxCoffee  = 35
	fillerMaxExplore = 75
)

// placeFiller occupies the head of the remaining segment with a
// low-commitment activity: a coffee break, a non-food stroll, or a
// plain explore-the-neighborhood block. Returns false when not even a
// minimum block fits.
func (s *schedulerState) placeFiller(endMin int) bool {
	budget := endMin - s.cursorMin
	if budget < minFlexBlock {
		return false
	}

	area := s.currentArea
	if area == "" {
		area = s.startArea
	}
	label := area
	if label == "" {
		label = "the neighborhood"
	}

	var stop *models.ScheduledStop
	switch {
	case s.foodStops < maxFoodStops && s.catCounts["coffee"] < categoryCap("coffee") && budget <= fillerMaxCoffee:
		stop = &models.ScheduledStop{
			Title:       "Coffee break",
			Category:    "coffee",
			Description: fmt.Sprintf("Duck into a cafe around %s and recharge.", label),
		}
	case budget <= fillerMaxExplore:
		stop = &models.ScheduledStop{
			Title:       "Window shopping",
			Category:    "walk",
			Description: fmt.Sprintf("Browse the storefronts and side streets of %s.", label),
		}
	default:
		stop = &models.ScheduledStop{
			Title:       fmt.Sprintf("Explore %s", label),
			Category:    "explore",
			Description: "Wander at your own pace; no agenda required.",
		}
		budget = fillerMaxExplore
	}

	stop.StartMin = s.cursorMin
	stop.EndMin = s.cursorMin + budget
	stop.Location = area
	s.commit(stop, false)
	return true
}
