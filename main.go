package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/vedantlonkar23/loopspacenew/config"
	"github.com/vedantlonkar23/loopspacenew/database"
	"github.com/vedantlonkar23/loopspacenew/middleware"
	"github.com/vedantlonkar23/loopspacenew/routes"
)

func main() {
	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(routes.SetupCORS(cfg.FrontendURL))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(120, 30))

	routes.SetupRoutes(router, db, cfg)

	log.Printf("Starting LoopSpace API server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
