package models

import "time"

// Comment is a text annotation on one video by one user. CommentID is a
// generated string id carried alongside the primary key; clients address
// comments by it.
type Comment struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	CommentID string    `gorm:"size:36;unique_index;not null" json:"commentId"`
	VideoID   uint      `gorm:"not null;index" json:"videoId"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	User      *User     `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Text      string    `gorm:"size:500;not null" json:"text"`
	CreatedAt time.Time `json:"timestamp"`
}
