package models

import "time"

// DefaultBannerURL is assigned when a channel is created without a banner.
const DefaultBannerURL = "https://placehold.co/1280x240?text=banner"

// Channel is a publishing identity owned by exactly one user. OwnerID is
// immutable after creation; (owner_id, channel_name) is unique.
type Channel struct {
	ID            uint      `gorm:"primary_key" json:"id"`
	ChannelName   string    `gorm:"size:50;not null" json:"channelName"`
	OwnerID       uint      `gorm:"not null;index" json:"ownerId"`
	Owner         *User     `gorm:"foreignkey:OwnerID" json:"owner,omitempty"`
	Description   string    `gorm:"size:500" json:"description"`
	ChannelBanner string    `gorm:"size:500" json:"channelBanner"`
	Subscribers   int64     `gorm:"default:0" json:"subscribers"`
	Category      string    `gorm:"size:30" json:"category"`
	Videos        []Video   `gorm:"foreignkey:ChannelID" json:"videos,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
