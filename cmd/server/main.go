package main

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"banana-product-listing/internal/banana"
	"banana-product-listing/internal/config"
	"banana-product-listing/internal/handlers"
	"banana-product-listing/internal/middleware"
	"banana-product-listing/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize generation service client and the card store
	bananaClient := banana.NewClient(cfg.BananaAPIBaseURL)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	cardStore := store.New(bananaClient, rng)

	// Initialize handlers
	cardsHandler := handlers.NewCardsHandler(cardStore)

	// Setup router
	router := gin.Default()

	// Middleware
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")
	api.GET("/cards", cardsHandler.List)
	api.POST("/cards/generate", cardsHandler.Generate)
	api.DELETE("/cards", cardsHandler.Clear)
	api.DELETE("/cards/error", cardsHandler.DismissError)

	// Start server
	log.Printf("Server starting on port %s (generation service: %s)", cfg.Port, cfg.BananaAPIBaseURL)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
