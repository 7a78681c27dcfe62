package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vedantlonkar23/loopspacenew/config"
	"github.com/vedantlonkar23/loopspacenew/controllers"
	"github.com/vedantlonkar23/loopspacenew/middleware"
	"github.com/vedantlonkar23/loopspacenew/services"
	"gorm.io/gorm"
)

// SetupCORS allows the frontend origin to call the API from the browser.
func SetupCORS(frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", frontendURL)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	emailService := services.NewEmailService(cfg)
	uploadService := services.NewUploadService(cfg.UploadDir, "/uploads")

	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	socialAuthController := controllers.NewSocialAuthController(db, cfg)
	userController := controllers.NewUserController(db, uploadService)
	eventController := controllers.NewEventController(db, uploadService)
	postController := controllers.NewPostController(db, uploadService)
	searchController := controllers.NewSearchController(db)

	// Locally stored media is served straight from disk.
	r.Static("/uploads", cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "healthy"})
	})

	api := r.Group("/api")
	authRequired := middleware.AuthMiddleware(cfg.JWTSecret)

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.GET("/google", socialAuthController.GoogleLogin)
		auth.GET("/google/callback", socialAuthController.GoogleCallback)

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
}
