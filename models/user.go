package models

import (
	"time"
)

type UserRole string

const (
	RoleIndividual UserRole = "individual"
	RoleOrganizer  UserRole = "organizer"
)

// IsValidRole reports whether a role value is one of the two account roles.
func IsValidRole(role string) bool {
	return role == string(RoleIndividual) || role == string(RoleOrganizer)
}

// User is an individual or organizer account. Role is fixed at creation and
// never changes afterwards. Password is nil for OAuth-only accounts.
type User struct {
	ID                string      `json:"id" gorm:"primaryKey;size:191"`
	Role              UserRole    `json:"role" gorm:"not null;size:20"`
	Name              string      `json:"name" gorm:"not null;size:255"`
	Email             string      `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password          *string     `json:"-" gorm:"size:255"`
	GoogleID          *string     `json:"-" gorm:"uniqueIndex;size:255"`
	ProfilePic        *string     `json:"profile_pic" gorm:"size:500"`
	Bio               string      `json:"bio" gorm:"size:500"`
	Skills            StringSlice `json:"skills" gorm:"type:json"`
	Interests         StringSlice `json:"interests" gorm:"type:json"`
	IsProfileComplete bool        `json:"is_profile_complete" gorm:"default:false"`

	// Organizer-only fields, meaningless when role = individual.
	OrganizationName        string      `json:"organization_name" gorm:"size:255"`
	OrganizationDescription string      `json:"organization_description" gorm:"size:1000"`
	Website                 string      `json:"website" gorm:"size:500"`
	PhoneNumber             string      `json:"phone_number" gorm:"size:50"`
	EventTypes              StringSlice `json:"event_types" gorm:"type:json"`
	Location                string      `json:"location" gorm:"size:255"`
	OrganizationLogo        *string     `json:"organization_logo" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Posts           []Post  `json:"posts,omitempty" gorm:"foreignKey:UserID"`
	EventsOrganized []Event `json:"events_organized,omitempty" gorm:"foreignKey:OrganizerID"`
}

// Sanitize strips credentials before a user record is written to a response.
func (u *User) Sanitize() {
	u.Password = nil
	u.GoogleID = nil
}

// Connection is one direction of a symmetric user-to-user edge. Connecting A
// and B always creates both rows inside a single transaction.
type Connection struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_connection_pair"`
	ConnectionID string    `json:"connection_id" gorm:"not null;size:191;uniqueIndex:idx_connection_pair"`
	CreatedAt    time.Time `json:"created_at"`

	User           User `json:"-" gorm:"foreignKey:UserID"`
	ConnectionUser User `json:"-" gorm:"foreignKey:ConnectionID"`
}
