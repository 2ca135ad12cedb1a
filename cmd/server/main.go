package main

import (
	"log"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/api"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/config"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/providers"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/service"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 加载 POI 目录
	places, err := service.LoadCatalog(cfg)
	if err != nil {
		log.Fatal("Failed to load catalog:", err)
	}
	log.Printf("Loaded %d catalog places for %s", len(places), cfg.City)

	// External providers are disabled by default; real clients get
	// wired here when their credentials are configured.
	planner := service.NewPlannerService(places, providers.Disabled())

	// 初始化路由
	router := api.SetupRouter(cfg, planner)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
