package api

import (
	"net/http"
	"testing"

	"blog_api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRequireAdminFlag(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	_, userToken := createUser(t, db, "alice123", "a@x.com", "Passw0rd", false)

	// A valid token without the admin flag is forbidden, not hidden
	w := doRequest(t, r, "GET", "/admin/users", nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	posts := doRequest(t, r, "GET", "/admin/posts", nil, userToken)
	assert.Equal(t, http.StatusForbidden, posts.Code)

	// No token at all is unauthorized
	anon := doRequest(t, r, "GET", "/admin/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
}

func TestAdminListUsers(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	_, adminToken := createUser(t, db, "admin", "admin@x.com", "Adm1nPass", true)
	createUser(t, db, "alice123", "a@x.com", "Passw0rd", false)
	createUser(t, db, "bob456", "b@x.com", "Passw0rd", false)

	w := doRequest(t, r, "GET", "/admin/users", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	users := decodeList(t, w)
	assert.Len(t, users, 3)
	for _, u := range users {
		assert.NotContains(t, u, "password")
	}
}

func TestAdminGetUser(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	_, adminToken := createUser(t, db, "admin", "admin@x.com", "Adm1nPass", true)
	alice, _ := createUser(t, db, "alice123", "a@x.com", "Passw0rd", false)

	w := doRequest(t, r, "GET", "/admin/users/"+itoa(alice.ID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "alice123", body["username"])

	// Admin misses are plain not-found
	missing := doRequest(t, r, "GET", "/admin/users/99999", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestAdminUpdateUser(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	_, adminToken := createUser(t, db, "admin", "admin@x.com", "Adm1nPass", true)
	alice, _ := createUser(t, db, "alice123", "a@x.com", "Passw0rd", false)

	w := doRequest(t, r, "PATCH", "/admin/users/"+itoa(alice.ID), map[string]any{"username": "renamed"}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var stored domain.User
	require.NoError(t, db.First(&stored, alice.ID).Error)
	assert.Equal(t, "renamed", stored.Username)
	assert.Equal(t, "a@x.com", stored.Email) // Untouched

	// The same validation rules apply as on self-service updates
	bad := doRequest(t, r, "PATCH", "/admin/users/"+itoa(alice.ID), map[string]any{"email": "admin@x.com"}, adminToken)
	require.Equal(t, http.StatusBadRequest, bad.Code)
	errs := fieldErrors(t, bad)
	assert.Contains(t, errs, "email")
}

func TestAdminDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	_, adminToken := createUser(t, db, "admin", "admin@x.com", "Adm1nPass", true)
	alice, _ := createUser(t, db, "alice123", "a@x.com", "Passw0rd", false)
	post := createPost(t, db, alice.ID, "Hi there", "this is long enough", true)

	w := doRequest(t, r, "DELETE", "/admin/users/"+itoa(alice.ID), nil, adminToken)
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	db.Model(&domain.User{}).Where("id = ?", alice.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&domain.Post{}).Where("user_id = ?", alice.ID).Count(&count)
	assert.Zero(t, count)

	// Her former post is gone from the admin surface too
	gone := doRequest(t, r, "GET", "/admin/posts/"+itoa(post.ID), nil, adminToken)
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestAdminListPostsIncludesUnpublished(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	_, adminToken := createUser(t, db, "admin", "admin@x.com", "Adm1nPass", true)
	alice, _ := createUser(t, db, "alice123", "a@x.com", "Passw0rd", false)
	createPost(t, db, alice.ID, "Published one", "this is long enough", true)
	createPost(t, db, alice.ID, "Draft one", "this is long enough", false)

	w := doRequest(t, r, "GET", "/admin/posts", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	posts := decodeList(t, w)
	assert.Len(t, posts, 2) // Unlike the public listing

	// And unpublished posts resolve by id for admins
	var draft domain.Post
	require.NoError(t, db.Where("is_published = ?", false).First(&draft).Error)
	single := doRequest(t, r, "GET", "/admin/posts/"+itoa(draft.ID), nil, adminToken)
	assert.Equal(t, http.StatusOK, single.Code)
}

func TestAdminUpdatePost(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	_, adminToken := createUser(t, db, "admin", "admin@x.com", "Adm1nPass", true)
	alice, _ := createUser(t, db, "alice123", "a@x.com", "Passw0rd", false)
	post := createPost(t, db, alice.ID, "Hi there", "this is long enough", false)

	w := doRequest(t, r, "PATCH", "/admin/posts/"+itoa(post.ID), map[string]any{"is_published": true}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var stored domain.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.True(t, stored.IsPublished)
	assert.Equal(t, "Hi there", stored.Title) // Untouched

	// Validation rules still apply
	bad := doRequest(t, r, "PATCH", "/admin/posts/"+itoa(post.ID), map[string]any{"content": "short"}, adminToken)
	require.Equal(t, http.StatusBadRequest, bad.Code)
	errs := fieldErrors(t, bad)
	assert.Contains(t, errs, "content")
}

func TestAdminDeletePost(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	_, adminToken := createUser(t, db, "admin", "admin@x.com", "Adm1nPass", true)
	alice, _ := createUser(t, db, "alice123", "a@x.com", "Passw0rd", false)
	post := createPost(t, db, alice.ID, "Hi there", "this is long enough", true)

	w := doRequest(t, r, "DELETE", "/admin/posts/"+itoa(post.ID), nil, adminToken)
	require.Equal(t, http.StatusNoContent, w.Code)

	missing := doRequest(t, r, "DELETE", "/admin/posts/"+itoa(post.ID), nil, adminToken)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
