package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vedantlonkar23/loopspacenew/models"
	"github.com/vedantlonkar23/loopspacenew/services"
	"github.com/vedantlonkar23/loopspacenew/utils"
	"gorm.io/gorm"
)

// maxCodeAttempts bounds the retry loop when a generated event code collides
// with an existing one.
const maxCodeAttempts = 5

type EventController struct {
	db      *gorm.DB
	uploads *services.UploadService
}

func NewEventController(db *gorm.DB, uploads *services.UploadService) *EventController {
	return &EventController{db: db, uploads: uploads}
}

// eventDetail is an event with its people lists resolved. Winners keep their
// designated order.
type eventDetail struct {
	models.Event
	Attendees  []models.User `json:"attendees"`
	Volunteers []models.User `json:"volunteers"`
	Winners    []models.User `json:"winners"`
}

func parseEventDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

// CreateEvent validates the multipart form, allocates a unique event code and
// stores the event under the calling organizer.
func (ec *EventController) CreateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var errs []utils.FieldError

	name := strings.TrimSpace(c.PostForm("name"))
	if len(name) < 3 {
		errs = append(errs, utils.FieldError{Field: "name", Message: "Event name must be at least 3 characters long"})
	}

	var date time.Time
	if v := c.PostForm("date"); v == "" {
		errs = append(errs, utils.FieldError{Field: "date", Message: "Event date is required"})
	} else if parsed, err := parseEventDate(v); err != nil {
		errs = append(errs, utils.FieldError{Field: "date", Message: "Invalid date format"})
	} else {
		date = parsed
	}

	startTime := c.PostForm("start_time")
	if !utils.IsValidTimeOfDay(startTime) {
		errs = append(errs, utils.FieldError{Field: "start_time", Message: "Start time must be in HH:mm format"})
	}
	endTime := c.PostForm("end_time")
	if !utils.IsValidTimeOfDay(endTime) {
		errs = append(errs, utils.FieldError{Field: "end_time", Message: "End time must be in HH:mm format"})
	}

	eventType := c.PostForm("event_type")
	if !models.IsValidEventType(eventType) {
		errs = append(errs, utils.FieldError{Field: "event_type", Message: "Invalid event type"})
	}

	capacity := 0
	if v := c.PostForm("capacity"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			errs = append(errs, utils.FieldError{Field: "capacity", Message: "Capacity must be a positive number"})
		} else {
			capacity = parsed
		}
	}

	ticketPrice := 0.0
	if v := c.PostForm("ticket_price"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			errs = append(errs, utils.FieldError{Field: "ticket_price", Message: "Ticket price must be a non-negative number"})
		} else {
			ticketPrice = parsed
		}
	}

	status := c.PostForm("status")
	if status == "" {
		status = models.EventStatusDraft
	} else if !models.IsValidEventStatus(status) {
		errs = append(errs, utils.FieldError{Field: "status", Message: "Invalid event status"})
	}

	if len(errs) > 0 {
		utils.SendValidationErrors(c, errs)
		return
	}

	var organizer models.User
	if err := ec.db.First(&organizer, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}
	if organizer.Role != models.RoleOrganizer {
		utils.SendError(c, http.StatusForbidden, "Only organizers can create events")
		return
	}

	var bannerUrl *string
	if file, err := c.FormFile("banner"); err == nil {
		url, err := ec.uploads.SaveImage(c, file, "event_banners")
		if err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to upload banner image")
			return
		}
		bannerUrl = &url
	}

	code, err := ec.allocateEventCode()
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate event code")
		return
	}

	event := models.Event{
		ID:          uuid.New().String(),
		EventCode:   code,
		Name:        name,
		Description: c.PostForm("description"),
		OrganizerID: userID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		Location:    c.PostForm("location"),
		Capacity:    capacity,
		TicketPrice: ticketPrice,
		EventType:   eventType,
		Tags:        models.StringSlice(c.PostFormArray("tags")),
		Skills:      models.StringSlice(c.PostFormArray("skills")),
		Interests:   models.StringSlice(c.PostFormArray("interests")),
		BannerUrl:   bannerUrl,
		Status:      status,
	}

	if err := ec.db.Create(&event).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create event")
		return
	}

	// Volunteer ids that do not resolve to accounts are dropped silently.
	for _, volunteerID := range c.PostFormArray("volunteer_ids") {
		var volunteer models.User
		if err := ec.db.First(&volunteer, "id = ?", volunteerID).Error; err != nil {
			continue
		}
		ec.db.Create(&models.EventVolunteer{EventID: event.ID, UserID: volunteerID})
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully",
		"event":   event,
	})
}

// allocateEventCode generates codes until one clears the uniqueness check,
// giving up after maxCodeAttempts.
func (ec *EventController) allocateEventCode() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := utils.GenerateEventCode()

		var count int64
		if err := ec.db.Model(&models.Event{}).Where("event_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", gorm.ErrDuplicatedKey
}

type AttendRequest struct {
	EventCode string `json:"event_code" binding:"required"`
}

// AttendEvent records attendance through a shared event code. The operation
// is an idempotent set-add: attending twice succeeds without duplicating the
// membership, and the single join row keeps user and event views consistent.
func (ec *EventController) AttendEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req AttendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Event code is required")
		return
	}

	if !utils.IsValidEventCode(req.EventCode) {
		utils.SendError(c, http.StatusBadRequest, "Invalid event code")
		return
	}

	var event models.Event
	if err := ec.db.Where("event_code = ?", req.EventCode).First(&event).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	var existing models.EventAttendee
	if err := ec.db.Where("event_id = ? AND user_id = ?", event.ID, userID).
		First(&existing).Error; err == nil {
		utils.SendMessage(c, http.StatusOK, "Event attendance recorded successfully")
		return
	}

	attendee := models.EventAttendee{EventID: event.ID, UserID: userID}
	if err := ec.db.Create(&attendee).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to record attendance")
		return
	}

	utils.SendMessage(c, http.StatusOK, "Event attendance recorded successfully")
}

func (ec *EventController) GetEvent(c *gin.Context) {
	eventCode := c.Param("eventCode")
	if !utils.IsValidEventCode(eventCode) {
		utils.SendError(c, http.StatusBadRequest, "Invalid event code")
		return
	}

	var event models.Event
	if err := ec.db.Preload("Organizer").Where("event_code = ?", eventCode).First(&event).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}
	event.Organizer.Sanitize()

	detail, err := ec.buildEventDetail(event)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (ec *EventController) GetEventsByOrganizer(c *gin.Context) {
	userID := c.GetString("user_id")

	var events []models.Event
	if err := ec.db.Where("organizer_id = ?", userID).Order("date ASC").Find(&events).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	details := make([]eventDetail, 0, len(events))
	for _, event := range events {
		detail, err := ec.buildEventDetail(event)
		if err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to fetch events")
			return
		}
		details = append(details, *detail)
	}

	c.JSON(http.StatusOK, gin.H{"events": details})
}

func (ec *EventController) buildEventDetail(event models.Event) (*eventDetail, error) {
	attendees, err := ec.loadEventUsers(&models.EventAttendee{}, event.ID)
	if err != nil {
		return nil, err
	}

	volunteers, err := ec.loadEventUsers(&models.EventVolunteer{}, event.ID)
	if err != nil {
		return nil, err
	}

	winners, err := ec.loadWinners(event.ID)
	if err != nil {
		return nil, err
	}

	return &eventDetail{
		Event:      event,
		Attendees:  attendees,
		Volunteers: volunteers,
		Winners:    winners,
	}, nil
}

// loadEventUsers resolves the users behind attendee or volunteer join rows.
func (ec *EventController) loadEventUsers(joinModel interface{}, eventID string) ([]models.User, error) {
	var ids []string
	err := ec.db.Model(joinModel).Where("event_id = ?", eventID).Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}

	if err := ec.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Sanitize()
	}

	return users, nil
}

func (ec *EventController) loadWinners(eventID string) ([]models.User, error) {
	var rows []models.EventWinner
	if err := ec.db.Where("event_id = ?", eventID).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	winners := []models.User{}
	for _, row := range rows {
		var user models.User
		if err := ec.db.First(&user, "id = ?", row.UserID).Error; err != nil {
			continue
		}
		user.Sanitize()
		winners = append(winners, user)
	}

	return winners, nil
}
