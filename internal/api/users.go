package api

import (
	"blog_api/internal/domain"     // Importing domain models
	"blog_api/internal/utils"      // Cache helpers
	"blog_api/internal/validation" // Field validation rules
	"context"                      // Context for Redis operations
	"net/http"                     // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// UpdateUserRequest is the partial payload for user updates.
// Nil fields were absent from the payload and are left untouched.
type UpdateUserRequest struct {
	Username *string `json:"username"` // New display name, if supplied
	Email    *string `json:"email"`    // New email address, if supplied
}

// currentUser loads the authenticated user set by the JWT middleware.
// On failure it writes the error response and returns ok=false.
func currentUser(c *gin.Context, db *gorm.DB) (domain.User, bool) {
	userID, exists := c.Get("userID") // Get userID from context
	if !exists {
		// Middleware not applied or token missing
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.User{}, false
	}
	var user domain.User // Fetch user from database
	if err := db.First(&user, userID).Error; err != nil {
		// The account behind a still-valid token may have been deleted
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.User{}, false
	}
	return user, true
}

// validateUserUpdate checks the supplied fields of a partial user update.
// excludeID is the user being updated, skipped in the uniqueness check.
// The error return carries uniqueness-lookup failures.
func validateUserUpdate(db *gorm.DB, req UpdateUserRequest, excludeID uint) ([]validation.FieldError, error) {
	var errs []validation.FieldError
	if req.Username != nil {
		if e := validation.ValidateUsername(*req.Username); e != nil {
			errs = append(errs, *e) // Invalid username
		}
	}
	if req.Email != nil {
		if e := validation.ValidateEmail(*req.Email); e != nil {
			errs = append(errs, *e) // Invalid email syntax
		} else {
			taken, err := emailTaken(db, *req.Email, excludeID)
			if err != nil {
				return nil, err // Lookup failed, not "email free"
			}
			if taken {
				errs = append(errs, validation.FieldError{Field: "email", Message: "This email is already in use"})
			}
		}
	}
	return errs, nil
}

// applyUserUpdate copies the supplied fields onto the user record
func applyUserUpdate(user *domain.User, req UpdateUserRequest) {
	if req.Username != nil {
		user.Username = *req.Username // Apply new display name
	}
	if req.Email != nil {
		user.Email = *req.Email // Apply new email
	}
}

// deleteUser removes a user and all posts they own, then invalidates the
// published-posts cache since some of those posts may have been public.
func deleteUser(db *gorm.DB, rdb *redis.Client, userID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		// Delete the user's posts first
		if err := tx.Where("user_id = ?", userID).Delete(&domain.Post{}).Error; err != nil {
			return err // Return error to rollback
		}
		// Then the user record itself
		return tx.Delete(&domain.User{}, userID).Error
	})
	if err != nil {
		return err
	}
	_ = utils.DeleteCache(context.Background(), rdb, publishedPostsCacheKey) // Drop stale listing
	return nil
}

// MeHandler returns the public view of the authenticated user
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db) // Resolve the caller
		if !ok {
			return // Response already written
		}
		c.JSON(http.StatusOK, userView(user))
	}
}

// UpdateMeHandler applies a partial update to the authenticated user
func UpdateMeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db) // Resolve the caller
		if !ok {
			return // Response already written
		}
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate only the supplied fields
		errs, err := validateUserUpdate(db, req, user.ID)
		if err != nil {
			// If the uniqueness lookup fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
			return
		}
		if len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}
		applyUserUpdate(&user, req) // Copy supplied fields onto the record
		if err := db.Save(&user).Error; err != nil {
			// A concurrent registration can still hit the unique index
			// after the pre-check passed
			if req.Email != nil {
				c.JSON(http.StatusBadRequest, gin.H{"errors": []validation.FieldError{
					{Field: "email", Message: "This email is already in use"},
				}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		// Return the updated public view
		c.JSON(http.StatusOK, userView(user))
	}
}

// DeleteMeHandler deletes the authenticated user and all their posts
func DeleteMeHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db) // Resolve the caller
		if !ok {
			return // Response already written
		}
		if err := deleteUser(db, rdb, user.ID); err != nil {
			// If deletion fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		c.Status(http.StatusNoContent) // Deleted, nothing to return
	}
}
