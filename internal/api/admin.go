package api

import (
	"blog_api/internal/domain"     // Importing domain models
	"blog_api/internal/validation" // Field validation rules
	"net/http"                     // HTTP status codes
	"strconv"                      // String conversion

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// userIDParam parses the :id path parameter for admin user routes.
// On failure it writes the error response and returns ok=false.
func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32) // Parse the path parameter
	if err != nil {
		// Non-numeric id, return bad request
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return uint(id), true
}

// AdminListUsersHandler returns the public views of every user
func AdminListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User // Fetch all users
		if err := db.Find(&users).Error; err != nil {
			// If the query fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, userViews(users))
	}
}

// AdminGetUserHandler returns any user by id
func AdminGetUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c) // Parse the path parameter
		if !ok {
			return // Response already written
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, userView(user))
	}
}

// AdminUpdateUserHandler applies a partial update to any user by id.
// Validation matches the self-service update exactly.
func AdminUpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c) // Parse the path parameter
		if !ok {
			return // Response already written
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
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
		c.JSON(http.StatusOK, userView(user))
	}
}

// AdminDeleteUserHandler deletes any user by id, cascading to their posts
func AdminDeleteUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDParam(c) // Parse the path parameter
		if !ok {
			return // Response already written
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err := deleteUser(db, rdb, user.ID); err != nil {
			// If deletion fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		c.Status(http.StatusNoContent) // Deleted, nothing to return
	}
}

// AdminListPostsHandler returns every post, published or not
func AdminListPostsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var posts []domain.Post // Fetch all posts with their owners
		if err := db.Preload("User").Find(&posts).Error; err != nil {
			// If the query fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
		c.JSON(http.StatusOK, postViews(posts))
	}
}

// AdminGetPostHandler returns any post by id regardless of publication state
func AdminGetPostHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, ok := postIDParam(c) // Parse the path parameter
		if !ok {
			return // Response already written
		}
		var post domain.Post // Fetch post from database
		if err := db.Preload("User").First(&post, postID).Error; err != nil {
			// If post not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusOK, postView(post))
	}
}

// AdminUpdatePostHandler applies a partial update to any post by id.
// Validation matches the self-service update exactly.
func AdminUpdatePostHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, ok := postIDParam(c) // Parse the path parameter
		if !ok {
			return // Response already written
		}
		var post domain.Post // Fetch post from database
		if err := db.Preload("User").First(&post, postID).Error; err != nil {
			// If post not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		var req UpdatePostRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate only the supplied fields
		if errs := validatePostUpdate(req); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}
		applyPostUpdate(&post, req) // Copy supplied fields onto the record
		if err := db.Save(&post).Error; err != nil {
			// If saving fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
			return
		}
		invalidatePublishedPosts(rdb) // Publication state may have changed
		c.JSON(http.StatusOK, postView(post))
	}
}

// AdminDeletePostHandler deletes any post by id
func AdminDeletePostHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, ok := postIDParam(c) // Parse the path parameter
		if !ok {
			return // Response already written
		}
		var post domain.Post // Fetch post from database
		if err := db.First(&post, postID).Error; err != nil {
			// If post not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		// Attempt to delete the post
		if err := db.Delete(&post).Error; err != nil {
			// If deletion fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
			return
		}
		invalidatePublishedPosts(rdb)  // The post may have been public
		c.Status(http.StatusNoContent) // Deleted, nothing to return
	}
}
