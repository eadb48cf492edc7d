package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"folio-be/internal/cache"
	"folio-be/internal/config"
	"folio-be/internal/controllers"
	"folio-be/internal/database"
	"folio-be/internal/middleware"
	"folio-be/internal/repository"
	"folio-be/internal/service"
	"folio-be/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close() // Close connection when program exits

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)

	// Initialize token service
	tokenService := token.NewTokenService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTLDays)*24*time.Hour,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService)
	portfolioService := service.NewPortfolioService(portfolioRepo, cacheClient)

	// Initialize controllers
	authController := controllers.NewAuthController(
		authService,
		func() (time.Time, error) { return database.CheckRoundTrip(db) },
		cfg.DatabaseURL != "",
		cfg.JWTSecret != "",
		cfg.IsProduction(),
	)
	portfolioController := controllers.NewPortfolioController(portfolioService, cfg.IsProduction())

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	// Create a Gin router
	router := gin.Default()

	// CORS headers on every response; preflight answered before routing
	router.Use(middleware.CORS())

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes group with general rate limiting
	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Single action-dispatched auth route with stricter rate limiting
		api.Any("/auth", authRateLimiter.LimitMiddleware(), authController.Handle)

		// Portfolio route: GET fetches, POST replaces
		api.Any("/portfolio", portfolioController.Handle)
	}

	// Start the server
	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
