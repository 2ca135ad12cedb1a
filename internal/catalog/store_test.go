package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSeedAndLoad(t *testing.T) {
	store := openTestStore(t)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	seed := []models.Place{
		{
			Name:         "Attaboy",
			Category:     "bar",
			Neighborhood: "Lower East Side",
			MinMinutes:   45,
			MaxMinutes:   90,
			Vibes:        []string{"nightlife", "trendy"},
			Description:  "Ring the buzzer.",
			Hours: &models.OpeningHours{Periods: []models.Period{{
				Open:  models.DayTime{Day: 2, Minutes: 1020},
				Close: models.DayTime{Day: 3, Minutes: 120},
			}}},
		},
		{Name: "Washington Square Park", Category: "park", Neighborhood: "Greenwich Village", Lat: 40.7308, Lng: -73.9973},
	}
	require.NoError(t, store.Seed(seed))

	count, err = store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	places, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, places, 2)

	bar := places[0]
	assert.Equal(t, "Attaboy", bar.Name)
	assert.Equal(t, []string{"nightlife", "trendy"}, bar.Vibes)
	require.NotNil(t, bar.Hours)
	require.Len(t, bar.Hours.Periods, 1)
	assert.Equal(t, 1020, bar.Hours.Periods[0].Open.Minutes)

	park := places[1]
	assert.True(t, park.HasCoordinates())
	assert.Nil(t, park.Hours)
}

func TestStoreSeedReplacesByName(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Seed([]models.Place{{Name: "Abraço", Category: "coffee", Description: "v1"}}))
	require.NoError(t, store.Seed([]models.Place{{Name: "Abraço", Category: "coffee", Description: "v2"}}))

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	places, err := store.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, "v2", places[0].Description)
}
