package api

import (
	"blog_api/internal/domain"     // Importing domain models
	"blog_api/internal/utils"      // Cache helpers
	"blog_api/internal/validation" // Field validation rules
	"context"                      // Context for Redis operations
	"net/http"                     // HTTP status codes
	"strconv"                      // String conversion
	"time"                         // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

const (
	publishedPostsCacheKey = "posts:published" // Cache key for the public listing
	publishedPostsCacheTTL = 60 * time.Second  // Cache TTL for the public listing
)

// CreatePostRequest is the payload for post creation
type CreatePostRequest struct {
	Title       string `json:"title"`        // Post title
	Content     string `json:"content"`      // Post body
	IsPublished bool   `json:"is_published"` // Publication flag, defaults to false
}

// UpdatePostRequest is the partial payload for post updates.
// Nil fields were absent from the payload and are left untouched.
type UpdatePostRequest struct {
	Title       *string `json:"title"`        // New title, if supplied
	Content     *string `json:"content"`      // New body, if supplied
	IsPublished *bool   `json:"is_published"` // New publication flag, if supplied
}

// postIDParam parses the :id path parameter.
// On failure it writes the error response and returns ok=false.
func postIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32) // Parse the path parameter
	if err != nil {
		// Non-numeric id, return bad request
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return 0, false
	}
	return uint(id), true
}

// validatePostUpdate checks the supplied fields of a partial post update
func validatePostUpdate(req UpdatePostRequest) []validation.FieldError {
	var errs []validation.FieldError
	if req.Title != nil {
		if e := validation.ValidateTitle(*req.Title); e != nil {
			errs = append(errs, *e) // Invalid title
		}
	}
	if req.Content != nil {
		if e := validation.ValidateContent(*req.Content); e != nil {
			errs = append(errs, *e) // Invalid content
		}
	}
	return errs
}

// applyPostUpdate copies the supplied fields onto the post record
func applyPostUpdate(post *domain.Post, req UpdatePostRequest) {
	if req.Title != nil {
		post.Title = *req.Title // Apply new title
	}
	if req.Content != nil {
		post.Content = *req.Content // Apply new body
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished // Apply new publication flag
	}
}

// invalidatePublishedPosts drops the cached public listing after a post mutation
func invalidatePublishedPosts(rdb *redis.Client) {
	_ = utils.DeleteCache(context.Background(), rdb, publishedPostsCacheKey)
}

// ListMyPostsHandler returns every post owned by the caller, published or not
func ListMyPostsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db) // Resolve the caller
		if !ok {
			return // Response already written
		}
		var posts []domain.Post // Fetch the caller's posts
		if err := db.Where("user_id = ?", user.ID).Preload("User").Find(&posts).Error; err != nil {
			// If the query fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
		c.JSON(http.StatusOK, postViews(posts))
	}
}

// CreatePostHandler creates a post owned by the caller
func CreatePostHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db) // Resolve the caller
		if !ok {
			return // Response already written
		}
		var req CreatePostRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Collect every field violation so the caller sees them all at once
		var errs []validation.FieldError
		if e := validation.ValidateTitle(req.Title); e != nil {
			errs = append(errs, *e) // Invalid title
		}
		if e := validation.ValidateContent(req.Content); e != nil {
			errs = append(errs, *e) // Invalid content
		}
		if len(errs) > 0 {
			// Return the per-field error list
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}
		post := domain.Post{
			UserID:      user.ID,         // Owned by the caller
			Title:       req.Title,       // Post title
			Content:     req.Content,     // Post body
			IsPublished: req.IsPublished, // Publication flag
		}
		// Attempt to create the post in the database
		if err := db.Create(&post).Error; err != nil {
			// If creation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
			return
		}
		post.User = user              // Attach the owner for the response view
		invalidatePublishedPosts(rdb) // The new post may be public already
		c.JSON(http.StatusOK, postView(post))
	}
}

// findOwnPost looks up a post by (id, owner) in a single scoped query.
// A miss is reported as not found whether the post is absent or owned by
// someone else, so callers cannot probe other users' posts.
func findOwnPost(c *gin.Context, db *gorm.DB, postID, userID uint) (domain.Post, bool) {
	var post domain.Post
	if err := db.Where("id = ? AND user_id = ?", postID, userID).Preload("User").First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return domain.Post{}, false
	}
	return post, true
}

// GetMyPostHandler returns one of the caller's posts by id
func GetMyPostHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db) // Resolve the caller
		if !ok {
			return // Response already written
		}
		postID, ok := postIDParam(c) // Parse the path parameter
		if !ok {
			return // Response already written
		}
		post, ok := findOwnPost(c, db, postID, user.ID) // Ownership-scoped lookup
		if !ok {
			return // Response already written
		}
		c.JSON(http.StatusOK, postView(post))
	}
}

// UpdateMyPostHandler applies a partial update to one of the caller's posts
func UpdateMyPostHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db) // Resolve the caller
		if !ok {
			return // Response already written
		}
		postID, ok := postIDParam(c) // Parse the path parameter
		if !ok {
			return // Response already written
		}
		post, ok := findOwnPost(c, db, postID, user.ID) // Ownership-scoped lookup
		if !ok {
			return // Response already written
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

// DeleteMyPostHandler deletes one of the caller's posts by id
func DeleteMyPostHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db) // Resolve the caller
		if !ok {
			return // Response already written
		}
		postID, ok := postIDParam(c) // Parse the path parameter
		if !ok {
			return // Response already written
		}
		post, ok := findOwnPost(c, db, postID, user.ID) // Ownership-scoped lookup
		if !ok {
			return // Response already written
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

// ListPublishedPostsHandler returns every published post across all users.
// Open to any caller; the result is served from Redis when fresh.
func ListPublishedPostsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Try to get cached response
		var cached []PostResponse
		found, err := utils.GetCache(ctx, rdb, publishedPostsCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Serve from cache
			return
		}
		var posts []domain.Post // Fetch published posts with their owners
		if err := db.Where("is_published = ?", true).Preload("User").Find(&posts).Error; err != nil {
			// If the query fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
		resp := postViews(posts)
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, publishedPostsCacheKey, resp, publishedPostsCacheTTL)
		c.JSON(http.StatusOK, resp)
	}
}

// GetPublishedPostHandler returns a single published post by id.
// An unpublished post is indistinguishable from a missing one here.
func GetPublishedPostHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, ok := postIDParam(c) // Parse the path parameter
		if !ok {
			return // Response already written
		}
		var post domain.Post // Scoped to published posts only
		if err := db.Where("id = ? AND is_published = ?", postID, true).Preload("User").First(&post).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusOK, postView(post))
	}
}
