package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

func TestNewPoolDeduplicates(t *testing.T) {
	pool := NewPool([]models.Place{
		{Name: "Joe's Pizza", Category: "lunch", Neighborhood: "Greenwich Village"},
		{Name: "joe's  pizza", Category: "lunch", Neighborhood: "Times Square"},
		{Name: "Abraço", Category: "coffee"},
		{Name: "   ", Category: "coffee"},
	})

	assert.Equal(t, 2, pool.Len())
	got := pool.Get("JOE'S PIZZA")
	require.NotNil(t, got)
	assert.Equal(t, "Greenwich Village", got.Neighborhood, "first entry wins")
}

func TestPoolCopiesInput(t *testing.T) {
	src := []models.Place{{Name: "Abraço", Category: "coffee"}}
	pool := NewPool(src)

	pool.Get("Abraço").Neighborhood = "East Village"
	assert.Empty(t, src[0].Neighborhood, "the catalog snapshot stays untouched")
}

func TestPoolRemove(t *testing.T) {
	pool := NewPool([]models.Place{
		{Name: "Abraço", Category: "coffee"},
		{Name: "La Cabra", Category: "coffee"},
	})

	pool.Remove("abraço")
	assert.Equal(t, 1, pool.Len())
	assert.Nil(t, pool.Get("Abraço"))

	pool.Remove("never existed")
	assert.Equal(t, 1, pool.Len())
}

func TestPoolOrderStable(t *testing.T) {
	pool := NewPool([]models.Place{
		{Name: "B Spot", Category: "bar"},
		{Name: "A Spot", Category: "bar"},
		{Name: "C Spot", Category: "bar"},
	})
	assert.Equal(t, []string{"B Spot", "A Spot", "C Spot"}, pool.Names(), "encounter order, not sorted")

	pool.Remove("A Spot")
	pool.Merge([]models.Place{{Name: "D Spot", Category: "bar"}})
	assert.Equal(t, []string{"B Spot", "C Spot", "D Spot"}, pool.Names())
}

func TestPoolMergeSkipsExisting(t *testing.T) {
	pool := NewPool([]models.Place{{Name: "Abraço", Category: "coffee", Description: "original"}})
	pool.Merge([]models.Place{{Name: "ABRAÇO", Category: "coffee", Description: "replacement"}})

	assert.Equal(t, 1, pool.Len())
	assert.Equal(t, "original", pool.Get("Abraço").Description)
}
