package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/config"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/handler"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/middleware"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, planner *service.PlannerService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "TravelBuddy planning API is running",
		})
	})

	itineraryHandler := handler.NewItineraryHandler(planner)
	catalogHandler := handler.NewCatalogHandler(planner)

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		// 行程规划接口
		itinerary := api.Group("/itinerary")
		itinerary.Use(middleware.RateLimit(20, time.Minute))
		{
			itinerary.POST("", itineraryHandler.Plan)
			itinerary.POST("/replace", itineraryHandler.Replace)
		}

		// POI 目录接口
		api.GET("/catalog", catalogHandler.List)
	}

	return r
}
