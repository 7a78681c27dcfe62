package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vedantlonkar23/loopspacenew/models"
	"github.com/vedantlonkar23/loopspacenew/services"
	"github.com/vedantlonkar23/loopspacenew/utils"
	"gorm.io/gorm"
)

type PostController struct {
	db      *gorm.DB
	uploads *services.UploadService
}

func NewPostController(db *gorm.DB, uploads *services.UploadService) *PostController {
	return &PostController{db: db, uploads: uploads}
}

// CreatePost stores a feed post with optional media and event association.
// The event code is format-checked only; whether an event currently carries
// that code is deliberately not enforced, since events may disappear while
// posts referencing them live on.
func (pc *PostController) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var errs []utils.FieldError

	title := strings.TrimSpace(c.PostForm("title"))
	if len(title) < 3 || len(title) > 100 {
		errs = append(errs, utils.FieldError{Field: "title", Message: "Title must be between 3 and 100 characters"})
	}

	description := strings.TrimSpace(c.PostForm("description"))
	if len(description) < 5 || len(description) > 1000 {
		errs = append(errs, utils.FieldError{Field: "description", Message: "Description must be between 5 and 1000 characters"})
	}

	var eventCode *string
	if v := c.PostForm("event_code"); v != "" {
		if !utils.IsValidEventCode(v) {
			errs = append(errs, utils.FieldError{Field: "event_code", Message: "Event code must be exactly 6 alphanumeric characters"})
		} else {
			eventCode = &v
		}
	}

	if len(errs) > 0 {
		utils.SendValidationErrors(c, errs)
		return
	}

	media := models.StringSlice{}
	if file, err := c.FormFile("media"); err == nil {
		url, err := pc.uploads.SaveImage(c, file, "posts")
		if err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to upload media")
			return
		}
		media = append(media, url)
	}

	post := models.Post{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Media:       media,
		EventCode:   eventCode,
	}

	if err := pc.db.Create(&post).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	pc.db.Preload("User").First(&post, "id = ?", post.ID)
	post.User.Sanitize()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

// GetFeed returns all posts newest first, decorated with the viewer's like
// state and like counts.
func (pc *PostController) GetFeed(c *gin.Context) {
	userID := c.GetString("user_id")

	var posts []models.Post
	err := pc.db.
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comments.User").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch feed")
		return
	}

	liked, counts, err := pc.likeStats(userID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch feed")
		return
	}

	feed := make([]models.FeedPost, 0, len(posts))
	for _, post := range posts {
		post.User.Sanitize()
		for i := range post.Comments {
			post.Comments[i].User.Sanitize()
		}
		feed = append(feed, models.FeedPost{
			Post:       post,
			LikesCount: counts[post.ID],
			IsLiked:    liked[post.ID],
		})
	}

	c.JSON(http.StatusOK, feed)
}

// likeStats returns which posts the viewer liked and the like count per post.
func (pc *PostController) likeStats(userID string) (map[string]bool, map[string]int, error) {
	var likedIDs []string
	err := pc.db.Model(&models.PostLike{}).Where("user_id = ?", userID).Pluck("post_id", &likedIDs).Error
	if err != nil {
		return nil, nil, err
	}

	liked := make(map[string]bool, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = true
	}

	var rows []struct {
		PostID string
		Count  int
	}
	err = pc.db.Model(&models.PostLike{}).
		Select("post_id, COUNT(*) AS count").
		Group("post_id").
		Find(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}

	return liked, counts, nil
}

func (pc *PostController) LikePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	var existing models.PostLike
	if err := pc.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusBadRequest, "Post already liked")
		return
	}

	like := models.PostLike{PostID: postID, UserID: userID}
	if err := pc.db.Create(&like).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to like post")
		return
	}

	utils.SendMessage(c, http.StatusOK, "Post liked successfully")
}

func (pc *PostController) UnlikePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	var like models.PostLike
	if err := pc.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error; err != nil {
		utils.SendError(c, http.StatusBadRequest, "Post not liked")
		return
	}

	if err := pc.db.Delete(&like).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to unlike post")
		return
	}

	utils.SendMessage(c, http.StatusOK, "Post unliked successfully")
}

type CommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=1000"`
}

func (pc *PostController) CommentPost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Comment must be between 1 and 1000 characters")
		return
	}

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Post not found")
		return
	}

	comment := models.Comment{
		ID:     uuid.New().String(),
		PostID: postID,
		UserID: userID,
		Text:   strings.TrimSpace(req.Text),
	}

	if err := pc.db.Create(&comment).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

// DeleteComment removes a comment; only its author may do so.
func (pc *PostController) DeleteComment(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")
	commentID := c.Param("commentId")

	var comment models.Comment
	if err := pc.db.Where("id = ? AND post_id = ?", commentID, postID).First(&comment).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Comment not found")
		return
	}

	if comment.UserID != userID {
		utils.SendError(c, http.StatusForbidden, "Not authorized to delete comment")
		return
	}

	if err := pc.db.Delete(&comment).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete comment")
		return
	}

	utils.SendMessage(c, http.StatusOK, "Comment deleted successfully")
}

func (pc *PostController) GetUserPosts(c *gin.Context) {
	userID := c.Param("id")

	var posts []models.Post
	err := pc.db.
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comments.User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	for i := range posts {
		posts[i].User.Sanitize()
		for j := range posts[i].Comments {
			posts[i].Comments[j].User.Sanitize()
		}
	}

	c.JSON(http.StatusOK, posts)
}
