package domain

import "time" // Timestamps

// Post Model
type Post struct {
	ID          uint      `gorm:"primaryKey"`          // Primary key
	UserID      uint      `gorm:"not null;index"`      // Foreign key to the owning User
	User        User      // Owning user, preloaded for responses
	Title       string    `gorm:"size:255;not null"`  // Post title
	Content     string    `gorm:"type:text;not null"` // Post body
	IsPublished bool      `gorm:"default:false"`      // Publication flag
	CreatedAt   time.Time `gorm:"autoCreateTime"`     // Set once at creation
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`     // Refreshed on every update
}
