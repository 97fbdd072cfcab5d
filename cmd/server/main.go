package main

import (
	"blog_api/internal/api"        // Custom package for API handlers
	"blog_api/internal/config"     // Custom package for configuration
	"blog_api/internal/middleware" // Custom package for middleware
	"context"                      // context package is needed for Redis operations
	"log"                          // log package is needed for logging

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

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
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

	// Open routes
	r.POST("/register", api.RegisterHandler(db))                    // Registration endpoint
	r.POST("/login", api.LoginHandler(db, cfg.JWTSecret))           // Login endpoint
	r.GET("/posts", api.ListPublishedPostsHandler(db, redisClient)) // Public published posts
	r.GET("/posts/:id", api.GetPublishedPostHandler(db))            // Single published post

	// Self-service routes (protected by JWT)
	meGroup := r.Group("/me")
	meGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	meGroup.GET("", api.MeHandler(db))                                     // Current user endpoint
	meGroup.PATCH("", api.UpdateMeHandler(db))                             // Update current user endpoint
	meGroup.DELETE("", api.DeleteMeHandler(db, redisClient))               // Delete current user endpoint
	meGroup.GET("/posts", api.ListMyPostsHandler(db))                      // Own posts listing endpoint
	meGroup.POST("/posts", api.CreatePostHandler(db, redisClient))         // Create post endpoint
	meGroup.GET("/posts/:id", api.GetMyPostHandler(db))                    // Own post endpoint
	meGroup.PATCH("/posts/:id", api.UpdateMyPostHandler(db, redisClient))  // Update own post endpoint
	meGroup.DELETE("/posts/:id", api.DeleteMyPostHandler(db, redisClient)) // Delete own post endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/users", api.AdminListUsersHandler(db))                      // List users endpoint
	adminGroup.GET("/users/:id", api.AdminGetUserHandler(db))                    // Single user endpoint
	adminGroup.PATCH("/users/:id", api.AdminUpdateUserHandler(db))               // Update user endpoint
	adminGroup.DELETE("/users/:id", api.AdminDeleteUserHandler(db, redisClient)) // Delete user endpoint
	adminGroup.GET("/posts", api.AdminListPostsHandler(db))                      // List posts endpoint
	adminGroup.GET("/posts/:id", api.AdminGetPostHandler(db))                    // Single post endpoint
	adminGroup.PATCH("/posts/:id", api.AdminUpdatePostHandler(db, redisClient))  // Update post endpoint
	adminGroup.DELETE("/posts/:id", api.AdminDeletePostHandler(db, redisClient)) // Delete post endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
