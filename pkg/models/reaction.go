package models

import "time"

// Reaction kinds.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reaction records a single user's like or dislike on a video. The unique
// (user_id, video_id) index guarantees a user holds at most one of the two.
type Reaction struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	UserID    uint      `gorm:"not null;unique_index:uq_reactions_user_video" json:"userId"`
	VideoID   uint      `gorm:"not null;unique_index:uq_reactions_user_video" json:"videoId"`
	Kind      string    `gorm:"size:10;not null" json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}
