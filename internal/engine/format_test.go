package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/geo"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/providers"
)

func TestFormatStopsTransitInterleave(t *testing.T) {
	stops := []*models.ScheduledStop{
		{Title: "Abraço", Category: "coffee", StartMin: 540, EndMin: 570, Location: "East Village"},
		{Title: "Brooklyn Bridge", Category: "landmark", StartMin: 600, EndMin: 660, Location: "Dumbo",
			TravelMinFromPrev: 30, TravelModeFromPrev: "transit"},
		{Title: "Dumbo cobblestones", Category: "walk", StartMin: 665, EndMin: 695, Location: "Dumbo",
			TravelMinFromPrev: 5, TravelModeFromPrev: "walk"},
	}

	out := formatStops(stops)
	require.Len(t, out, 4, "one transit note for the long hop, none for the short one")

	assert.Equal(t, "Abraço", out[0].Title)
	assert.Equal(t, "9:00 AM – 9:30 AM", out[0].Time)

	transit := out[1]
	assert.Equal(t, models.TransitTitle, transit.Title)
	assert.Equal(t, "9:30 AM – 10:00 AM", transit.Time)
	assert.Equal(t, "Head to Dumbo (~30 min by transit).", transit.Description)

	assert.Equal(t, "Brooklyn Bridge", out[2].Title)
	assert.Equal(t, "Dumbo cobblestones", out[3].Title)
}

func TestStopURL(t *testing.T) {
	withURL := &models.ScheduledStop{Title: "MoMA", URL: "https://www.moma.org"}
	assert.Equal(t, "https://www.moma.org", stopURL(withURL))

	withCoords := &models.ScheduledStop{Title: "Brooklyn Bridge", Lat: 40.7061, Lng: -73.9969}
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=40.70610%2C-73.99690", stopURL(withCoords))

	withLocation := &models.ScheduledStop{Title: "Joe's Pizza", Location: "Greenwich Village"}
	assert.Contains(t, stopURL(withLocation), "https://www.google.com/maps/search/?api=1&query=")

	bare := &models.ScheduledStop{Title: "Coffee to start"}
	assert.Empty(t, stopURL(bare))
}

func TestShiftAfterTravel(t *testing.T) {
	prev := &models.ScheduledStop{StartMin: 540, EndMin: 600}
	st := &models.ScheduledStop{StartMin: 605, EndMin: 665, TravelMinFromPrev: 15}

	shiftAfterTravel(prev, st)
	assert.Equal(t, 615, st.StartMin)
	assert.Equal(t, 675, st.EndMin, "duration preserved")

	// No shift when there is already room
	st2 := &models.ScheduledStop{StartMin: 700, EndMin: 730, TravelMinFromPrev: 10}
	shiftAfterTravel(prev, st2)
	assert.Equal(t, 700, st2.StartMin)
}

// fixedMatrix answers every travel-matrix query with the same durations
type fixedMatrix struct {
	durations geo.Durations
}

func (m *fixedMatrix) TravelDurations(_ context.Context, _, _ string, _ time.Time) (*geo.Durations, error) {
	d := m.durations
	return &d, nil
}

func TestRefineTravelCapsMatrixEstimates(t *testing.T) {
	matrix := &fixedMatrix{durations: geo.Durations{TransitMinutes: 200}}
	s := newTestState(t, nil, "2025-10-14")
	s.est = geo.NewEstimator(matrix, s.weekday)
	s.set.Matrix = matrix

	anchor := flexStop("Birthday dinner", "dinner", "Dumbo", 900, 990)
	anchor.IsAnchor = true
	s.stops = []*models.ScheduledStop{
		flexStop("Abraço", "coffee", "West Village", 600, 660),
		flexStop("Domino Park", "park", "Williamsburg", 680, 740),
		anchor,
	}

	s.refineTravel(context.Background())

	park := s.stops[1]
	assert.Equal(t, nonAnchorTravelCeiling, park.TravelMinFromPrev, "runaway matrix readings are capped")
	assert.Equal(t, 720, park.StartMin, "the stop shifts by the capped travel only")
	assert.Equal(t, 780, park.EndMin)

	assert.Equal(t, anchorTravelCeiling, anchor.TravelMinFromPrev, "anchors tolerate longer hauls")
	assert.Equal(t, 900, anchor.StartMin, "no shift once the capped travel fits")
}
type polisherFunc func(ctx context.Context, stops []models.OutputStop, meta providers.PolishMeta) ([]models.OutputStop, error)

func (f polisherFunc) PolishTimeline(ctx context.Context, stops []models.OutputStop, meta providers.PolishMeta) ([]models.OutputStop, error) {
	return f(ctx, stops, meta)
}

func samplePolishInput() []models.OutputStop {
	return []models.OutputStop{
		{Time: "9:00 AM – 9:30 AM", Title: "Abraço", Description: "Espresso."},
		{Time: "10:00 AM – 11:00 AM", Title: "Brooklyn Bridge", Description: "Walk it."},
	}
}

func TestPolishAcceptsDescriptionRewrites(t *testing.T) {
	p := polisherFunc(func(_ context.Context, stops []models.OutputStop, _ providers.PolishMeta) ([]models.OutputStop, error) {
		out := make([]models.OutputStop, len(stops))
		copy(out, stops)
		out[0].Description = "Start slow with a proper espresso."
		return out, nil
	})

	got := polish(context.Background(), p, samplePolishInput(), providers.PolishMeta{})
	assert.Equal(t, "Start slow with a proper espresso.", got[0].Description)
	assert.Equal(t, "Abraço", got[0].Title)
}

func TestPolishDiscardsSchemaDeviations(t *testing.T) {
	input := samplePolishInput()

	dropOne := polisherFunc(func(_ context.Context, stops []models.OutputStop, _ providers.PolishMeta) ([]models.OutputStop, error) {
		return stops[:1], nil
	})
	assert.Equal(t, input, polish(context.Background(), dropOne, input, providers.PolishMeta{}))

	renames := polisherFunc(func(_ context.Context, stops []models.OutputStop, _ providers.PolishMeta) ([]models.OutputStop, error) {
		out := make([]models.OutputStop, len(stops))
		copy(out, stops)
		out[1].Title = "The Bridge"
		return out, nil
	})
	assert.Equal(t, input, polish(context.Background(), renames, input, providers.PolishMeta{}))

	shiftsTime := polisherFunc(func(_ context.Context, stops []models.OutputStop, _ providers.PolishMeta) ([]models.OutputStop, error) {
		out := make([]models.OutputStop, len(stops))
		copy(out, stops)
		out[0].Time = "8:00 AM – 8:30 AM"
		return out, nil
	})
	assert.Equal(t, input, polish(context.Background(), shiftsTime, input, providers.PolishMeta{}))

	fails := polisherFunc(func(_ context.Context, _ []models.OutputStop, _ providers.PolishMeta) ([]models.OutputStop, error) {
		return nil, errors.New("model unavailable")
	})
	assert.Equal(t, input, polish(context.Background(), fails, input, providers.PolishMeta{}))
}

func TestPolishNilPolisher(t *testing.T) {
	input := samplePolishInput()
	assert.Equal(t, input, polish(context.Background(), nil, input, providers.PolishMeta{}))
}
