package main

import (
	"blog_api/internal/config" // Custom import path (Config)
	"blog_api/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg)            // Run schema migration and admin seed
}
