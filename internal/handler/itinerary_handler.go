package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/engine"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/service"
	"github.com/SamTurer/travelbuddy-next-mvp/pkg/response"
)

// ItineraryHandler handles HTTP requests for itinerary planning
type ItineraryHandler struct {
	planner *service.PlannerService
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(planner *service.PlannerService) *ItineraryHandler {
	return &ItineraryHandler{planner: planner}
}

// Plan handles POST /api/v1/itinerary
func (h *ItineraryHandler) Plan(c *gin.Context) {
	var trip models.TripInput
	if err := c.ShouldBindJSON(&trip); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	itinerary, err := h.planner.Plan(c.Request.Context(), trip)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidInput):
			response.BadRequest(c, err.Error())
		case errors.Is(err, engine.ErrEmptyCatalog):
			response.InternalError(c, err.Error())
		default:
			response.InternalError(c, "Planning failed: "+err.Error())
		}
		return
	}

	response.Success(c, itinerary)
}

// Replace handles POST /api/v1/itinerary/replace
func (h *ItineraryHandler) Replace(c *gin.Context) {
	var req engine.ReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	itinerary, err := h.planner.ReplaceStop(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidInput) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "Replacement failed: "+err.Error())
		return
	}

	response.Success(c, itinerary)
}
