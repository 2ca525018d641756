package main

import (
	"context"                     // context package for store and Redis setup
	"log"                         // log package for the startup message
	"stocker/internal/api"        // Custom package for API handlers
	"stocker/internal/config"     // Custom package for configuration
	"stocker/internal/db"         // Custom package for the data-access service
	"stocker/internal/middleware" // Custom package for middleware
	"stocker/internal/store"      // Custom package for the table backends

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Select the table backend once: DynamoDB or the in-memory fallback
	ctx := context.Background()
	table, local := store.Open(ctx, cfg)
	database := db.New(table, local, cfg.AdminEmail)

	// Setup Redis client for response caching; the app runs uncached if
	// Redis is unreachable
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logrus.WithError(err).Warn("Redis unreachable, running without cache")
			redisClient = nil
		}
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/signup", api.SignupHandler(database))              // Registration endpoint
	r.POST("/login", api.LoginHandler(database, cfg.JWTSecret)) // Login endpoint

	// User routes (protected by JWT)
	userGroup := r.Group("/")
	userGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	userGroup.GET("/dashboard", api.DashboardHandler(database, redisClient)) // Portfolio overview endpoint
	userGroup.GET("/portfolio", api.PortfolioHandler(database))              // Holdings endpoint
	userGroup.GET("/transactions", api.TransactionsHandler(database))        // Trade history endpoint
	userGroup.GET("/stocks", api.ListStocksHandler(database, redisClient))   // Listed stocks endpoint
	userGroup.POST("/trade", api.TradeHandler(database, redisClient))        // Trade execution endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(database))
	adminGroup.GET("/users", api.ListUsersHandler(database))                            // List users endpoint
	adminGroup.GET("/stats", api.StatsHandler(database))                                // System stats endpoint
	adminGroup.GET("/stocks", api.ListStocksHandler(database, redisClient))             // List stocks endpoint
	adminGroup.POST("/stocks", api.CreateStockHandler(database, redisClient))           // Create stock endpoint
	adminGroup.DELETE("/stocks/:symbol", api.DeleteStockHandler(database, redisClient)) // Delete stock endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
