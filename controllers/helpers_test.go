package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vedantlonkar23/loopspacenew/database"
	"github.com/vedantlonkar23/loopspacenew/middleware"
	"github.com/vedantlonkar23/loopspacenew/models"
	"github.com/vedantlonkar23/loopspacenew/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testJWTSecret = "test-secret"
	testPassword  = "password123"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	return db
}

// newTestRouter wires the controllers to the same paths the server registers.
func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	uploads := services.NewUploadService(t.TempDir(), "/uploads")

	authController := NewAuthController(db, testJWTSecret, nil)
	userController := NewUserController(db, uploads)
	eventController := NewEventController(db, uploads)
	postController := NewPostController(db, uploads)
	searchController := NewSearchController(db)

	r := gin.New()
	api := r.Group("/api")
	authRequired := middleware.AuthMiddleware(testJWTSecret)

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)

		auth.GET("/user-profile", authRequired, userController.GetProfile)
		auth.GET("/user-profile-other/:userId", authRequired, userController.GetProfileOther)
		auth.PUT("/update-user-profile", authRequired, userController.UpdateUserProfile)
		auth.PUT("/update-organizer-profile", authRequired, userController.UpdateOrganizerProfile)
		auth.POST("/connect-user", authRequired, userController.ConnectUser)
		auth.GET("/connections", authRequired, userController.GetConnections)
	}

	event := api.Group("/event")
	event.Use(authRequired)
	{
		event.POST("/create-event", eventController.CreateEvent)
		event.POST("/event-attended", eventController.AttendEvent)
		event.GET("/event/:eventCode", eventController.GetEvent)
		event.GET("/get-events-organizer", eventController.GetEventsByOrganizer)
	}

	post := api.Group("/post")
	post.Use(authRequired)
	{
		post.POST("/create-post", postController.CreatePost)
		post.GET("/feed", postController.GetFeed)
		post.GET("/user-posts/:id", postController.GetUserPosts)
		post.POST("/like-post/:id", postController.LikePost)
		post.DELETE("/like-post/:id", postController.UnlikePost)
		post.POST("/comment-post/:id", postController.CommentPost)
		post.DELETE("/comment-post/:id/:commentId", postController.DeleteComment)
	}

	search := api.Group("/search")
	search.Use(authRequired)
	{
		search.GET("/users", searchController.SearchUsers)
		search.GET("/events", searchController.SearchEvents)
		search.GET("/posts", searchController.SearchPosts)
	}

	return r
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string, role models.UserRole) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	password := string(hashed)

	user := models.User{
		ID:       uuid.New().String(),
		Role:     role,
		Name:     name,
		Email:    email,
		Password: &password,
	}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := generateToken(testJWTSecret, user.ID, user.Email)
	require.NoError(t, err)

	return token
}

func doJSON(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
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

func doForm(r http.Handler, method, path, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}
