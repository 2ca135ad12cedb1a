package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/service"
	"github.com/SamTurer/travelbuddy-next-mvp/pkg/response"
)

// CatalogHandler handles HTTP requests for the place catalog
type CatalogHandler struct {
	planner *service.PlannerService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(planner *service.PlannerService) *CatalogHandler {
	return &CatalogHandler{planner: planner}
}

// List handles GET /api/v1/catalog with an optional category filter
func (h *CatalogHandler) List(c *gin.Context) {
	category := strings.ToLower(c.Query("category"))

	places := h.planner.Catalog()
	if category != "" {
		filtered := make([]models.Place, 0, len(places))
		for _, p := range places {
			if strings.ToLower(p.Category) == category {
				filtered = append(filtered, p)
			}
		}
		places = filtered
	}

	response.Success(c, gin.H{
		"total": len(places),
		"pois":  places,
	})
}
