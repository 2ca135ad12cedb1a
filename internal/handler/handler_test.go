package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/providers"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/service"
	"github.com/SamTurer/travelbuddy-next-mvp/pkg/response"
)

func testCatalog() []models.Place {
	return []models.Place{
		{Name: "Abraço", Category: "coffee", Neighborhood: "East Village", Description: "Espresso bar."},
		{Name: "La Cabra", Category: "coffee", Neighborhood: "NoHo", Description: "Roaster."},
		{Name: "Joe's Pizza", Category: "lunch", Neighborhood: "Greenwich Village", Description: "The slice."},
		{Name: "Katz's Delicatessen", Category: "lunch", Neighborhood: "Lower East Side", Description: "Pastrami."},
		{Name: "Via Carota", Category: "dinner", Neighborhood: "West Village", Description: "Rustic Italian."},
		{Name: "Thai Diner", Category: "dinner", Neighborhood: "Nolita", Description: "Comfort food."},
		{Name: "Whitney Museum", Category: "museum", Neighborhood: "Meatpacking District", Description: "American art."},
		{Name: "The High Line", Category: "walk", Neighborhood: "Chelsea", Description: "Rail-trail."},
		{Name: "Washington Square Park", Category: "park", Neighborhood: "Greenwich Village", Description: "The arch."},
		{Name: "Grand Central Terminal", Category: "landmark", Neighborhood: "Midtown", Description: "The ceiling."},
		{Name: "Chelsea Market", Category: "market", Neighborhood: "Chelsea", Description: "Food hall."},
		{Name: "Veniero's", Category: "dessert", Neighborhood: "East Village", Description: "Cannoli."},
	}
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	planner := service.NewPlannerService(testCatalog(), providers.Disabled())
	itineraries := NewItineraryHandler(planner)
	catalogs := NewCatalogHandler(planner)

	r := gin.New()
	r.POST("/api/v1/itinerary", itineraries.Plan)
	r.POST("/api/v1/itinerary/replace", itineraries.Replace)
	r.GET("/api/v1/catalog", catalogs.List)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func TestPlanEndpoint(t *testing.T) {
	r := testRouter()
	w, envelope := doJSON(t, r, http.MethodPost, "/api/v1/itinerary", models.TripInput{
		City: "New York City",
		Date: "2025-10-12",
		Pace: models.PaceChill,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, envelope.Code)
	assert.NotEmpty(t, envelope.RequestID)

	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var payload struct {
		RunID    string                 `json:"runId"`
		Stops    []models.OutputStop    `json:"stops"`
		Timeline []models.ScheduledStop `json:"timeline"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.NotEmpty(t, payload.RunID)
	assert.NotEmpty(t, payload.Stops)
	assert.NotEmpty(t, payload.Timeline)
}

func TestPlanEndpointRejectsBadBody(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/itinerary", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Valid JSON, invalid trip
	w, envelope := doJSON(t, r, http.MethodPost, "/api/v1/itinerary", map[string]string{
		"city": "New York City",
		"date": "not-a-date",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusBadRequest, envelope.Code)
}

func TestReplaceEndpoint(t *testing.T) {
	r := testRouter()

	body := map[string]any{
		"trip": models.TripInput{City: "New York City", Date: "2025-10-12"},
		"timeline": []models.ScheduledStop{
			{Title: "The High Line", Category: "walk", StartMin: 780, EndMin: 840, Location: "Chelsea"},
			{Title: "Whitney Museum", Category: "museum", StartMin: 850, EndMin: 960, Location: "Meatpacking District", TravelMinFromPrev: 10},
		},
		"targetTitle": "Whitney Museum",
		"mood":        "hungry",
	}
	w, envelope := doJSON(t, r, http.MethodPost, "/api/v1/itinerary/replace", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, envelope.Code)
}

func TestReplaceEndpointUnknownMood(t *testing.T) {
	r := testRouter()

	body := map[string]any{
		"trip": models.TripInput{City: "New York City", Date: "2025-10-12"},
		"timeline": []models.ScheduledStop{
			{Title: "The High Line", Category: "walk", StartMin: 780, EndMin: 840, Location: "Chelsea"},
		},
		"targetTitle": "The High Line",
		"mood":        "melancholy",
	}
	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/itinerary/replace", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogEndpoint(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data := envelope.Data.(map[string]any)
	assert.Equal(t, float64(len(testCatalog())), data["total"])

	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog?category=Lunch", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data = envelope.Data.(map[string]any)
	assert.Equal(t, float64(2), data["total"], fmt.Sprintf("filter is case-insensitive: %v", data))
}
