package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"blog_api/internal/domain"
	"blog_api/internal/middleware"
	"blog_api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key"

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to test database")

	// Auto migrate the schema
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Post{}))
	return db
}

// setupTestRedis returns a client pointing at an unreachable address, so
// every cache operation errors out and handlers fall through to the DB
func setupTestRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
}

// setupRouter wires the full route table the way cmd/server does
func setupRouter(db *gorm.DB) *gin.Engine {
	rdb := setupTestRedis()
	r := gin.New()

	r.POST("/register", RegisterHandler(db))
	r.POST("/login", LoginHandler(db, testJWTSecret))
	r.GET("/posts", ListPublishedPostsHandler(db, rdb))
	r.GET("/posts/:id", GetPublishedPostHandler(db))

	meGroup := r.Group("/me")
	meGroup.Use(middleware.JWTAuthMiddleware(testJWTSecret))
	meGroup.GET("", MeHandler(db))
	meGroup.PATCH("", UpdateMeHandler(db))
	meGroup.DELETE("", DeleteMeHandler(db, rdb))
	meGroup.GET("/posts", ListMyPostsHandler(db))
	meGroup.POST("/posts", CreatePostHandler(db, rdb))
	meGroup.GET("/posts/:id", GetMyPostHandler(db))
	meGroup.PATCH("/posts/:id", UpdateMyPostHandler(db, rdb))
	meGroup.DELETE("/posts/:id", DeleteMyPostHandler(db, rdb))

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(testJWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/users", AdminListUsersHandler(db))
	adminGroup.GET("/users/:id", AdminGetUserHandler(db))
	adminGroup.PATCH("/users/:id", AdminUpdateUserHandler(db))
	adminGroup.DELETE("/users/:id", AdminDeleteUserHandler(db, rdb))
	adminGroup.GET("/posts", AdminListPostsHandler(db))
	adminGroup.GET("/posts/:id", AdminGetPostHandler(db))
	adminGroup.PATCH("/posts/:id", AdminUpdatePostHandler(db, rdb))
	adminGroup.DELETE("/posts/:id", AdminDeletePostHandler(db, rdb))

	return r
}

// createUser inserts a user directly and returns it with a valid token
func createUser(t *testing.T, db *gorm.DB, username, email, password string, isAdmin bool) (domain.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := domain.User{Username: username, Email: email, Password: string(hash), IsAdmin: isAdmin}
	require.NoError(t, db.Create(&user).Error)
	token, err := utils.GenerateJWT(user.ID, testJWTSecret)
	require.NoError(t, err)
	return user, token
}

// createPost inserts a post directly, bypassing the handlers
func createPost(t *testing.T, db *gorm.DB, userID uint, title, content string, published bool) domain.Post {
	t.Helper()
	post := domain.Post{UserID: userID, Title: title, Content: content, IsPublished: published}
	require.NoError(t, db.Create(&post).Error)
	return post
}

// itoa formats a record ID for use in request paths
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// doRequest performs a JSON request against the router, with an optional token
func doRequest(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body into a generic map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// decodeList unmarshals a JSON array response body
func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// fieldErrors extracts the per-field error list from a 400 response
func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	out := make(map[string]string, len(body.Errors))
	for _, e := range body.Errors {
		out[e.Field] = e.Message
	}
	return out
}
