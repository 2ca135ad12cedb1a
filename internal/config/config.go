package config

import (
	"os"
)

// Config 应用配置
type Config struct {
	Port        string
	CatalogPath string // JSON catalog file
	DBPath      string // Optional sqlite catalog db
	JWTSecret   string // Empty disables bearer auth
	City        string
}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	catalogPath := os.Getenv("CATALOG_PATH")
	if catalogPath == "" {
		catalogPath = "./data/nyc_catalog.json"
	}

	city := os.Getenv("CITY")
	if city == "" {
		city = "New York City"
	}

	return &Config{
		Port:        port,
		CatalogPath: catalogPath,
		DBPath:      os.Getenv("DB_PATH"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		City:        city,
	}
}
