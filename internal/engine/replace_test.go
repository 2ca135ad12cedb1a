package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/providers"
)

func chelseaTimeline() []models.ScheduledStop {
	return []models.ScheduledStop{
		{Title: "The High Line", Category: "walk", StartMin: 780, EndMin: 840, Location: "Chelsea"},
		{Title: "David Zwirner Gallery", Category: "gallery", StartMin: 850, EndMin: 940, Location: "Chelsea", TravelMinFromPrev: 10},
		{Title: "Whitney Museum", Category: "museum", StartMin: 950, EndMin: 1060, Location: "Meatpacking District", TravelMinFromPrev: 10},
	}
}

func replaceTrip() models.TripInput {
	return models.TripInput{City: "New York City", Date: "2025-10-12"}
}

func TestReplaceStopHungry(t *testing.T) {
	catalog := []models.Place{
		{Name: "Doughnut Plant", Category: "snack", Neighborhood: "Chelsea", Description: "Crème brûlée doughnuts."},
		{Name: "Joe's Pizza", Category: "lunch", Neighborhood: "Greenwich Village", Description: "The slice."},
	}
	eng := New(catalog, WithProviders(providers.Disabled()))

	it, err := eng.ReplaceStop(context.Background(), ReplaceRequest{
		Trip:        replaceTrip(),
		Timeline:    chelseaTimeline(),
		TargetTitle: "David Zwirner Gallery",
		Mood:        "hungry",
	})
	require.NoError(t, err)
	require.Len(t, it.Timeline, 3)

	swapped := it.Timeline[1]
	assert.Equal(t, "Doughnut Plant", swapped.Title, "lunch misses its window at 2pm, the snack fits")
	assert.Equal(t, "snack", swapped.Category)
	assert.Equal(t, 850, swapped.StartMin, "the slot is preserved")
	assert.Equal(t, 940, swapped.EndMin)
	assert.Equal(t, 0, swapped.TravelMinFromPrev, "Chelsea to Chelsea is a zero hop")

	// Neighbors untouched
	assert.Equal(t, "The High Line", it.Timeline[0].Title)
	assert.Equal(t, "Whitney Museum", it.Timeline[2].Title)
}

func TestReplaceStopInfeasibleKeepsTimeline(t *testing.T) {
	// No museum or gallery anywhere in the catalog
	catalog := []models.Place{
		{Name: "Joe's Pizza", Category: "lunch", Neighborhood: "Greenwich Village"},
	}
	eng := New(catalog, WithProviders(providers.Disabled()))

	it, err := eng.ReplaceStop(context.Background(), ReplaceRequest{
		Trip:        replaceTrip(),
		Timeline:    chelseaTimeline(),
		TargetTitle: "David Zwirner Gallery",
		Mood:        "culture",
	})
	require.NoError(t, err)
	assert.Equal(t, "David Zwirner Gallery", it.Timeline[1].Title, "nothing feasible, itinerary unchanged")
}

func TestReplaceStopSkipsUsedNames(t *testing.T) {
	// The only mood match is already on the timeline
	catalog := []models.Place{
		{Name: "Whitney Museum", Category: "museum", Neighborhood: "Meatpacking District"},
	}
	eng := New(catalog, WithProviders(providers.Disabled()))

	it, err := eng.ReplaceStop(context.Background(), ReplaceRequest{
		Trip:        replaceTrip(),
		Timeline:    chelseaTimeline(),
		TargetTitle: "David Zwirner Gallery",
		Mood:        "culture",
	})
	require.NoError(t, err)
	assert.Equal(t, "David Zwirner Gallery", it.Timeline[1].Title)
}

func TestReplaceStopInvalidRequests(t *testing.T) {
	eng := New(nycFixture(), WithProviders(providers.Disabled()))

	_, err := eng.ReplaceStop(context.Background(), ReplaceRequest{
		Trip:        replaceTrip(),
		Timeline:    chelseaTimeline(),
		TargetTitle: "David Zwirner Gallery",
		Mood:        "melancholy",
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "unknown mood")

	_, err = eng.ReplaceStop(context.Background(), ReplaceRequest{
		Trip:        replaceTrip(),
		Timeline:    chelseaTimeline(),
		TargetTitle: "Not On The Timeline",
		Mood:        "hungry",
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "missing target")

	anchored := chelseaTimeline()
	anchored[1].IsAnchor = true
	_, err = eng.ReplaceStop(context.Background(), ReplaceRequest{
		Trip:        replaceTrip(),
		Timeline:    anchored,
		TargetTitle: "David Zwirner Gallery",
		Mood:        "hungry",
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "anchors are fixed")

	_, err = eng.ReplaceStop(context.Background(), ReplaceRequest{
		Trip:        models.TripInput{City: "NYC"},
		Timeline:    chelseaTimeline(),
		TargetTitle: "David Zwirner Gallery",
		Mood:        "hungry",
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "bad trip input")
}

func TestReplaceStopRespectsStartWindows(t *testing.T) {
	// A dinner place cannot occupy a 2pm slot
	catalog := []models.Place{
		{Name: "Raoul's", Category: "dinner", Neighborhood: "SoHo"},
	}
	eng := New(catalog, WithProviders(providers.Disabled()))

	it, err := eng.ReplaceStop(context.Background(), ReplaceRequest{
		Trip:        replaceTrip(),
		Timeline:    chelseaTimeline(),
		TargetTitle: "David Zwirner Gallery",
		Mood:        "hungry",
	})
	require.NoError(t, err)
	assert.Equal(t, "David Zwirner Gallery", it.Timeline[1].Title)
}
