package models

import (
	"time"
)

// Post is a social content unit. An optional event code associates it with an
// event; the code is format-checked only, never foreign-key enforced, so a
// post may keep referencing a code whose event no longer exists.
type Post struct {
	ID          string      `json:"id" gorm:"primaryKey;size:191"`
	UserID      string      `json:"user_id" gorm:"not null;size:191;index"`
	Title       string      `json:"title" gorm:"not null;size:100"`
	Description string      `json:"description" gorm:"not null;size:1000"`
	Media       StringSlice `json:"media" gorm:"type:json"`
	EventCode   *string     `json:"event_code" gorm:"size:6"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	User     User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"comments" gorm:"foreignKey:PostID"`
}

// PostLike records that a user liked a post at most once.
type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;uniqueIndex:idx_post_like"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_post_like"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `json:"-" gorm:"foreignKey:PostID"`
	User User `json:"-" gorm:"foreignKey:UserID"`
}

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;index"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;index"`
	Text      string    `json:"text" gorm:"not null;size:1000"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// FeedPost is a post decorated with the viewer's like state.
type FeedPost struct {
	Post
	LikesCount int  `json:"likes_count"`
	IsLiked    bool `json:"is_liked"`
}
