package api

import (
	"blog_api/internal/domain" // Importing domain models
	"time"                     // Timestamps
)

// UserResponse is the public view of a user.
// The password hash and the admin flag are never serialized.
type UserResponse struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Display name
	Email    string `json:"email"`    // Email address
}

// PostResponse is the full view of a post, with the owner's public view nested
type PostResponse struct {
	ID          uint         `json:"id"`           // Post ID
	Title       string       `json:"title"`        // Post title
	Content     string       `json:"content"`      // Post body
	IsPublished bool         `json:"is_published"` // Publication flag
	CreatedAt   time.Time    `json:"created_at"`   // Creation timestamp
	User        UserResponse `json:"user"`         // Owning user
}

// userView maps a user to its public response form
func userView(u domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,       // User ID
		Username: u.Username, // Display name
		Email:    u.Email,    // Email address
	}
}

// userViews maps a slice of users to their public response forms
func userViews(users []domain.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = userView(u) // Map each user
	}
	return resp
}

// postView maps a post (with its User association preloaded) to its response form
func postView(p domain.Post) PostResponse {
	return PostResponse{
		ID:          p.ID,             // Post ID
		Title:       p.Title,          // Post title
		Content:     p.Content,        // Post body
		IsPublished: p.IsPublished,    // Publication flag
		CreatedAt:   p.CreatedAt,      // Creation timestamp
		User:        userView(p.User), // Owning user
	}
}

// postViews maps a slice of posts to their response forms
func postViews(posts []domain.Post) []PostResponse {
	resp := make([]PostResponse, len(posts))
	for i, p := range posts {
		resp[i] = postView(p) // Map each post
	}
	return resp
}
