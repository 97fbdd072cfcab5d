package db

import (
	"blog_api/internal/config" // Application configuration
	"blog_api/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(cfg *config.Config) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(&domain.User{}, &domain.Post{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration

	SeedAdmin(db, cfg) // Seed the admin account if configured
}

// SeedAdmin creates the admin account from ADMIN_* env vars.
// Skipped when the vars are unset or the email is already registered.
func SeedAdmin(db *gorm.DB, cfg *config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return // No admin configured
	}
	var count int64 // Check whether the admin already exists
	db.Model(&domain.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		logrus.Info("Admin account already exists, skipping seed.")
		return
	}
	// Hash the configured password
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("failed to hash admin password: %v", err)
	}
	username := cfg.AdminUsername // Fall back to a default display name
	if username == "" {
		username = "admin"
	}
	admin := domain.User{
		Username: username,       // Display name
		Email:    cfg.AdminEmail, // Email address
		Password: string(hash),   // Hashed password
		IsAdmin:  true,           // Admin flag
	}
	// Create the admin account
	if err := db.Create(&admin).Error; err != nil {
		logrus.Fatalf("failed to seed admin account: %v", err)
	}
	logrus.Infof("Admin account %s created.", cfg.AdminEmail)
}
