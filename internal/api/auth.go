package api

import (
	"blog_api/internal/domain"     // Importing domain models
	"blog_api/internal/utils"      // Utility functions
	"blog_api/internal/validation" // Field validation rules
	"net/http"                     // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Username string `json:"username"` // Display name
	Email    string `json:"email"`    // Email address, used as login identifier
	Password string `json:"password"` // Plaintext password, hashed before storage
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse carries the issued bearer token
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// emailTaken reports whether the email already belongs to a user other than excludeID.
// Pass excludeID 0 when registering (no user to exclude). A lookup failure is
// returned rather than read as "email free".
func emailTaken(db *gorm.DB, email string, excludeID uint) (bool, error) {
	var count int64
	err := db.Model(&domain.User{}).Where("email = ? AND id <> ?", email, excludeID).Count(&count).Error
	return count > 0, err
}

// RegisterHandler creates a new user account. Open to any caller.
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Collect every field violation so the caller sees them all at once
		var errs []validation.FieldError
		if e := validation.ValidateUsername(req.Username); e != nil {
			errs = append(errs, *e) // Invalid username
		}
		if e := validation.ValidateEmail(req.Email); e != nil {
			errs = append(errs, *e) // Invalid email syntax
		} else if taken, err := emailTaken(db, req.Email, 0); err != nil {
			// If the lookup fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
			return
		} else if taken {
			// Uniqueness is pre-checked here so the error stays field-specific
			errs = append(errs, validation.FieldError{Field: "email", Message: "This email is already in use"})
		}
		if e := validation.ValidatePassword(req.Password); e != nil {
			errs = append(errs, *e) // Invalid password
		}
		if len(errs) > 0 {
			// Return the per-field error list
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{
			Username: req.Username, // Display name
			Email:    req.Email,    // Email address
			Password: string(hash), // Hashed password
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// The unique index on email is the backstop for concurrent registrations
			c.JSON(http.StatusBadRequest, gin.H{"errors": []validation.FieldError{
				{Field: "email", Message: "This email is already in use"},
			}})
			return
		}
		// Return the public view of the new user
		c.JSON(http.StatusCreated, userView(user))
	}
}

// LoginHandler authenticates a user by email and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}
