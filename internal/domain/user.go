package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey"`                                    // Primary key
	Username string `gorm:"size:100;not null"`                             // Display name, not unique
	Email    string `gorm:"uniqueIndex;not null"`                          // Unique email, used as login identifier
	Password string `gorm:"not null"`                                      // Hashed password
	IsAdmin  bool   `gorm:"default:false"`                                 // Admin flag
	Posts    []Post `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // One-to-many relationship with Post
}
