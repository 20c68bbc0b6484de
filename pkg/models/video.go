package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Categories is the fixed set accepted for channels and videos.
var Categories = []string{
	"Music", "Gaming", "Sports", "News", "Education", "Entertainment",
	"Technology", "Travel", "Food", "Fashion", "Comedy", "Other",
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// StringList stores a []string as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("models: unsupported source type for StringList")
}

type Video struct {
	ID           uint       `gorm:"primary_key" json:"id"`
	Title        string     `gorm:"size:100;not null" json:"title"`
	Description  string     `gorm:"size:1000" json:"description"`
	VideoURL     string     `gorm:"size:500;not null" json:"videoUrl"`
	ThumbnailURL string     `gorm:"size:500" json:"thumbnailUrl"`
	ChannelID    uint       `gorm:"not null;index" json:"channelId"`
	Channel      *Channel   `gorm:"foreignkey:ChannelID" json:"channel,omitempty"`
	UploaderID   uint       `gorm:"not null;index" json:"uploaderId"`
	Uploader     *User      `gorm:"foreignkey:UploaderID" json:"uploader,omitempty"`
	Views        int64      `gorm:"default:0" json:"views"`
	Likes        int64      `gorm:"default:0" json:"likes"`
	Dislikes     int64      `gorm:"default:0" json:"dislikes"`
	Category     string     `gorm:"size:30" json:"category"`
	UploadDate   time.Time  `json:"uploadDate"`
	Duration     string     `gorm:"size:8" json:"duration"`
	Tags         StringList `gorm:"type:text" json:"tags"`
}
