package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/catalog"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

func TestWheelForNoVibes(t *testing.T) {
	wheel := wheelFor(nil)
	assert.Equal(t, baseWheel, wheel)

	// The base wheel itself must not be shared storage
	wheel[0] = "changed"
	assert.Equal(t, "coffee", baseWheel[0])
}

func TestWheelForPromotions(t *testing.T) {
	wheel := wheelFor([]string{"nightlife"})
	require.GreaterOrEqual(t, len(wheel), 3)
	assert.Equal(t, []string{"bar", "music", "dinner"}, wheel[:3])
	assert.Len(t, wheel, len(baseWheel), "promotion reorders, never adds")
}

func TestWheelForFirstVibeWins(t *testing.T) {
	wheel := wheelFor([]string{"foodie", "artsy"})
	assert.Equal(t, "lunch", wheel[0], "the first listed vibe ends up frontmost")
}

func TestPreferredStartAreaDeterministic(t *testing.T) {
	pool := catalog.NewPool([]models.Place{
		{Name: "Cafe A", Category: "coffee", Neighborhood: "East Village"},
		{Name: "Cafe B", Category: "coffee", Neighborhood: "East Village"},
		{Name: "Cafe C", Category: "coffee", Neighborhood: "West Village"},
		{Name: "Stroll", Category: "walk", Neighborhood: "Chelsea"},
		{Name: "Late Bar", Category: "bar", Neighborhood: "Bushwick"},
	})

	a := preferredStartArea(pool, nil, "2025-10-12")
	b := preferredStartArea(pool, nil, "2025-10-12")
	assert.Equal(t, a, b, "same date, same answer")
	assert.NotEmpty(t, a)
	assert.Contains(t, []string{"east village", "west village", "chelsea"}, a,
		"bars do not count toward morning density")
}

func TestPreferredStartAreaEmptyPool(t *testing.T) {
	assert.Empty(t, preferredStartArea(catalog.NewPool(nil), nil, "2025-10-12"))
}

func TestDateSeedStable(t *testing.T) {
	assert.Equal(t, dateSeed("2025-10-12"), dateSeed("2025-10-12"))
	assert.NotEqual(t, dateSeed("2025-10-12"), dateSeed("2025-10-13"))
}
