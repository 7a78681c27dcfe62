package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vedantlonkar23/loopspacenew/models"
	"github.com/vedantlonkar23/loopspacenew/services"
	"github.com/vedantlonkar23/loopspacenew/utils"
	"gorm.io/gorm"
)

type UserController struct {
	db      *gorm.DB
	uploads *services.UploadService
}

func NewUserController(db *gorm.DB, uploads *services.UploadService) *UserController {
	return &UserController{db: db, uploads: uploads}
}

// profileResponse is the full profile document with secrets excluded and the
// computed is_self flag. The flag is informational, not an access gate: any
// authenticated viewer sees the whole profile.
type profileResponse struct {
	models.User
	IsSelf         bool           `json:"is_self"`
	Connections    []models.User  `json:"connections"`
	EventsAttended []models.Event `json:"events_attended"`
}

func (uc *UserController) buildProfile(userID, viewerID string) (*profileResponse, error) {
	var user models.User
	err := uc.db.
		Preload("Posts", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("EventsOrganized").
		First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	user.Sanitize()

	connections, err := uc.loadConnections(userID)
	if err != nil {
		return nil, err
	}

	attended, err := loadAttendedEvents(uc.db, userID)
	if err != nil {
		return nil, err
	}

	return &profileResponse{
		User:           user,
		IsSelf:         userID == viewerID,
		Connections:    connections,
		EventsAttended: attended,
	}, nil
}

func (uc *UserController) loadConnections(userID string) ([]models.User, error) {
	var edges []models.Connection
	if err := uc.db.Where("user_id = ?", userID).Find(&edges).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.ConnectionID)
	}

	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}

	if err := uc.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Sanitize()
	}

	return users, nil
}

func loadAttendedEvents(db *gorm.DB, userID string) ([]models.Event, error) {
	var rows []models.EventAttendee
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}

	events := []models.Event{}
	if len(rows) == 0 {
		return events, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.EventID)
	}

	if err := db.Where("id IN ?", ids).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	profile, err := uc.buildProfile(userID, userID)
	if err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (uc *UserController) GetProfileOther(c *gin.Context) {
	viewerID := c.GetString("user_id")
	userID := c.Param("userId")

	profile, err := uc.buildProfile(userID, viewerID)
	if err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateUserProfile handles the individual onboarding/update form. The first
// successful submit flips is_profile_complete, regardless of which optional
// fields were actually supplied.
func (uc *UserController) UpdateUserProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}
	if user.Role == models.RoleOrganizer {
		utils.SendError(c, http.StatusForbidden, "Forbidden")
		return
	}

	if file, err := c.FormFile("profile_pic"); err == nil {
		url, err := uc.uploads.SaveImage(c, file, "profile_pics")
		if err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to upload profile picture")
			return
		}
		user.ProfilePic = &url
	}

	if name := c.PostForm("name"); name != "" {
		user.Name = name
	}
	if bio := c.PostForm("bio"); bio != "" {
		user.Bio = bio
	}
	if skills := c.PostFormArray("skills"); len(skills) > 0 {
		user.Skills = models.StringSlice(skills)
	}
	if interests := c.PostFormArray("interests"); len(interests) > 0 {
		user.Interests = models.StringSlice(interests)
	}
	user.IsProfileComplete = true

	if err := uc.db.Save(&user).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"profile_pic": user.ProfilePic,
		},
		"role":                user.Role,
		"is_profile_complete": user.IsProfileComplete,
	})
}

// UpdateOrganizerProfile is the organizer counterpart; individual accounts
// are rejected so the two role-gated field sets can never cross.
func (uc *UserController) UpdateOrganizerProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}
	if user.Role == models.RoleIndividual {
		utils.SendError(c, http.StatusForbidden, "Forbidden")
		return
	}

	if file, err := c.FormFile("organization_logo"); err == nil {
		url, err := uc.uploads.SaveImage(c, file, "organization_logos")
		if err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to upload organization logo")
			return
		}
		user.OrganizationLogo = &url
	}

	if v := c.PostForm("organization_name"); v != "" {
		user.OrganizationName = v
	}
	if v := c.PostForm("organization_description"); v != "" {
		user.OrganizationDescription = v
	}
	if v := c.PostForm("website"); v != "" {
		user.Website = v
	}
	if v := c.PostForm("phone_number"); v != "" {
		user.PhoneNumber = v
	}
	if v := c.PostFormArray("event_types"); len(v) > 0 {
		user.EventTypes = models.StringSlice(v)
	}
	if v := c.PostForm("location"); v != "" {
		user.Location = v
	}
	user.IsProfileComplete = true

	if err := uc.db.Save(&user).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":                  user.ID,
			"name":                user.Name,
			"email":               user.Email,
			"profile_pic":         user.ProfilePic,
			"role":                user.Role,
			"is_profile_complete": user.IsProfileComplete,
		},
	})
}

type ConnectRequest struct {
	ConnectionID string `json:"connection_id" binding:"required"`
}

// ConnectUser adds a symmetric edge between the caller and another user.
// Both directions are written in one transaction so the graph can never end
// up with a one-way connection.
func (uc *UserController) ConnectUser(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Connection ID is required")
		return
	}

	if req.ConnectionID == userID {
		utils.SendError(c, http.StatusBadRequest, "Cannot connect to self")
		return
	}

	var target models.User
	if err := uc.db.First(&target, "id = ?", req.ConnectionID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Connection user not found")
		return
	}

	var existing models.Connection
	if err := uc.db.Where("user_id = ? AND connection_id = ?", userID, req.ConnectionID).
		First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusBadRequest, "Already connected")
		return
	}

	err := uc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Connection{UserID: userID, ConnectionID: req.ConnectionID}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Connection{UserID: req.ConnectionID, ConnectionID: userID}).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to add connection")
		return
	}

	utils.SendMessage(c, http.StatusOK, "Connection added successfully")
}

func (uc *UserController) GetConnections(c *gin.Context) {
	userID := c.GetString("user_id")

	connections, err := uc.loadConnections(userID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch connections")
		return
	}

	c.JSON(http.StatusOK, connections)
}
