package models

import (
	"time"
)

const (
	EventTypeConference = "conference"
	EventTypeWorkshop   = "workshop"
	EventTypeSeminar    = "seminar"
	EventTypeNetworking = "networking"
	EventTypeOther      = "other"
)

const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
)

// IsValidEventType reports whether v is a known event type.
func IsValidEventType(v string) bool {
	switch v {
	case EventTypeConference, EventTypeWorkshop, EventTypeSeminar, EventTypeNetworking, EventTypeOther:
		return true
	}
	return false
}

// IsValidEventStatus reports whether v is a known event status.
func IsValidEventStatus(v string) bool {
	switch v {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled:
		return true
	}
	return false
}

// Event is an organizer-owned record reachable by its six character code.
// EventCode and OrganizerID are immutable after creation.
type Event struct {
	ID          string      `json:"id" gorm:"primaryKey;size:191"`
	EventCode   string      `json:"event_code" gorm:"uniqueIndex;not null;size:6"`
	Name        string      `json:"name" gorm:"not null;size:255"`
	Description string      `json:"description" gorm:"type:text"`
	OrganizerID string      `json:"organizer_id" gorm:"not null;size:191;index"`
	Date        time.Time   `json:"date" gorm:"not null"`
	StartTime   string      `json:"start_time" gorm:"not null;size:5"` // HH:mm
	EndTime     string      `json:"end_time" gorm:"not null;size:5"`   // HH:mm
	Location    string      `json:"location" gorm:"size:255"`
	Capacity    int         `json:"capacity"`
	TicketPrice float64     `json:"ticket_price" gorm:"default:0"`
	EventType   string      `json:"event_type" gorm:"not null;size:20"`
	Tags        StringSlice `json:"tags" gorm:"type:json"`
	Skills      StringSlice `json:"skills" gorm:"type:json"`
	Interests   StringSlice `json:"interests" gorm:"type:json"`
	BannerUrl   *string     `json:"banner_url" gorm:"size:500"`
	Status      string      `json:"status" gorm:"not null;default:'draft';size:20"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Organizer User `json:"organizer,omitempty" gorm:"foreignKey:OrganizerID"`
}

// EventAttendee links a user to an event they attended. One row carries both
// sides of the relation, so attendance can never go asymmetric.
type EventAttendee struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"event_id" gorm:"not null;size:191;uniqueIndex:idx_event_attendee"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_event_attendee"`
	CreatedAt time.Time `json:"created_at"`

	Event Event `json:"-" gorm:"foreignKey:EventID"`
	User  User  `json:"-" gorm:"foreignKey:UserID"`
}

type EventVolunteer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"event_id" gorm:"not null;size:191;uniqueIndex:idx_event_volunteer"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_event_volunteer"`
	CreatedAt time.Time `json:"created_at"`

	Event Event `json:"-" gorm:"foreignKey:EventID"`
	User  User  `json:"-" gorm:"foreignKey:UserID"`
}

// EventWinner keeps the organizer-designated winner list ordered by Position.
type EventWinner struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"event_id" gorm:"not null;size:191;index"`
	UserID    string    `json:"user_id" gorm:"not null;size:191"`
	Position  int       `json:"position" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`

	Event Event `json:"-" gorm:"foreignKey:EventID"`
	User  User  `json:"-" gorm:"foreignKey:UserID"`
}
