package api

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vitalmesh/frontdesk/internal/stores/records"
	"github.com/vitalmesh/frontdesk/pkg/utils"

	health_module "github.com/vitalmesh/frontdesk/internal/api/modules/health"
	records_module "github.com/vitalmesh/frontdesk/internal/api/modules/records"
)

// Start runs the read-only records API until the server exits.
func Start(cfg *utils.Config, store records.Store) {
	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8080")

	// Add app level settings/routes
	engine := NewEngine(cfg, store)

	// Then after performing initial setup, start the server
	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}

// NewEngine builds the configured gin engine without starting it.
func NewEngine(cfg *utils.Config, store records.Store) *gin.Engine {
	engine := gin.Default()

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)

	records_module.RegisterRoutes(baseGroup)
	records_module.Init(store)

	return engine
}
