package main

import (
	"botmarket/internal/api"        // Custom package for API handlers
	"botmarket/internal/config"     // Custom package for configuration
	"botmarket/internal/domain"     // Custom package for domain models
	"botmarket/internal/middleware" // Custom package for middleware
	"context"                       // context package is needed for Redis operations
	"log"                           // log package is needed for logging

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database.
	// TranslateError lets the stores detect duplicate-key violations.
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
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
	authGroup := r.Group("/auth")
	authGroup.POST("/web3", api.Web3AuthHandler(db, cfg))                                // Wallet-signature login
	authGroup.POST("/register", api.RegisterHandler(db))                                 // Email registration
	authGroup.GET("/me", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.MeHandler(db)) // Current account

	// Product routes: reads are public, writes need a seller or admin role
	productGroup := r.Group("/products")
	productGroup.GET("", api.ListProductsHandler(db, redisClient)) // Filtered catalog listing
	productGroup.GET("/:id", api.GetProductHandler(db))            // Single product
	sellerGroup := productGroup.Group("")
	sellerGroup.Use(
		middleware.JWTAuthMiddleware(cfg.JWTSecret),
		middleware.RequireRoleMiddleware(db, domain.RoleSeller, domain.RoleAdmin),
	)
	sellerGroup.POST("", api.CreateProductHandler(db, redisClient))       // List a product
	sellerGroup.PUT("/:id", api.UpdateProductHandler(db, redisClient))    // Patch a product
	sellerGroup.DELETE("/:id", api.DeleteProductHandler(db, redisClient)) // Soft delete

	// Order routes (protected by JWT)
	orderGroup := r.Group("/orders")
	orderGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	orderGroup.POST("", api.CreateOrderHandler(db, redisClient))            // Create order
	orderGroup.GET("", api.ListOrdersHandler(db, redisClient))              // Own orders
	orderGroup.GET("/:id", api.GetOrderHandler(db))                         // Single order
	orderGroup.POST("/:id/pay", api.ConfirmPaymentHandler(db, redisClient)) // Confirm payment
	orderGroup.POST("/:id/cancel", api.CancelOrderHandler(db, redisClient)) // Cancel order

	// User routes
	userGroup := r.Group("/users")
	userGroup.GET("/:id", api.GetUserHandler(db))                                                 // Public summary
	userGroup.PUT("/:id", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.UpdateUserHandler(db)) // Self or admin patch

	// Payment routes (static/mock quote data)
	paymentGroup := r.Group("/payments")
	paymentGroup.POST("/create", api.CreatePaymentHandler(db))  // Mock payment envelope
	paymentGroup.GET("/currencies", api.GetCurrenciesHandler()) // Supported currencies
	paymentGroup.GET("/rates", api.GetRatesHandler())           // Mock exchange rates

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
