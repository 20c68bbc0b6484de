package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"vidshare/pkg/database"
	"vidshare/pkg/middleware"
	"vidshare/pkg/models"
)

type channelRequest struct {
	ChannelName   string `json:"channelName"`
	Description   string `json:"description"`
	ChannelBanner string `json:"channelBanner"`
	Category      string `json:"category"`
}

func (r channelRequest) validate() map[string]string {
	errs := map[string]string{}
	if r.ChannelName == "" || len(r.ChannelName) > 50 {
		errs["channelName"] = "channel name must be 1-50 characters"
	}
	if len(r.Description) > 500 {
		errs["description"] = "description must be at most 500 characters"
	}
	if !models.ValidCategory(r.Category) {
		errs["category"] = "unknown category"
	}
	if r.ChannelBanner != "" && !isURL(r.ChannelBanner) {
		errs["channelBanner"] = "banner must be a valid URL"
	}
	return errs
}

func CreateChannel(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req channelRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		validationError(c, errs)
		return
	}

	var existing models.Channel
	err := database.DB.Where("owner_id = ? AND channel_name = ?", user.ID, req.ChannelName).First(&existing).Error
	if err == nil {
		validationError(c, map[string]string{"channelName": "you already have a channel with this name"})
		return
	}
	if !gorm.IsRecordNotFoundError(err) {
		serverError(c, err)
		return
	}

	banner := req.ChannelBanner
	if banner == "" {
		banner = models.DefaultBannerURL
	}
	channel := models.Channel{
		ChannelName:   req.ChannelName,
		OwnerID:       user.ID,
		Description:   req.Description,
		ChannelBanner: banner,
		Category:      req.Category,
	}
	if err := database.DB.Create(&channel).Error; err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"channel": channel})
}

func ListChannels(c *gin.Context) {
	var channels []models.Channel
	if err := database.DB.Preload("Owner").Order("created_at DESC").Find(&channels).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

func GetChannel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		notFound(c, "channel")
		return
	}

	var channel models.Channel
	err := database.DB.
		Preload("Owner").
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("upload_date DESC") }).
		Preload("Videos.Uploader").
		First(&channel, id).Error
	if gorm.IsRecordNotFoundError(err) {
		notFound(c, "channel")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channel": channel})
}

func ListChannelsByUser(c *gin.Context) {
	userID, ok := paramID(c, "userId")
	if !ok {
		notFound(c, "user")
		return
	}

	var channels []models.Channel
	err := database.DB.Where("owner_id = ?", userID).
		Preload("Owner").
		Order("created_at DESC").
		Find(&channels).Error
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

func UpdateChannel(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		notFound(c, "channel")
		return
	}
	var channel models.Channel
	err := database.DB.First(&channel, id).Error
	if gorm.IsRecordNotFoundError(err) {
		notFound(c, "channel")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	if channel.OwnerID != user.ID {
		forbidden(c, "you do not own this channel")
		return
	}

	var req channelRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		validationError(c, errs)
		return
	}

	// Renames re-check per-owner uniqueness, excluding this row.
	if req.ChannelName != channel.ChannelName {
		var clash models.Channel
		err := database.DB.Where("owner_id = ? AND channel_name = ? AND id <> ?", user.ID, req.ChannelName, channel.ID).
			First(&clash).Error
		if err == nil {
			validationError(c, map[string]string{"channelName": "you already have a channel with this name"})
			return
		}
		if !gorm.IsRecordNotFoundError(err) {
			serverError(c, err)
			return
		}
	}

	// Banner keeps its prior value when not supplied.
	banner := req.ChannelBanner
	if banner == "" {
		banner = channel.ChannelBanner
	}
	updates := map[string]interface{}{
		"channel_name":   req.ChannelName,
		"description":    req.Description,
		"channel_banner": banner,
		"category":       req.Category,
	}
	if err := database.DB.Model(&channel).Updates(updates).Error; err != nil {
		serverError(c, err)
		return
	}
	if err := database.DB.Preload("Owner").First(&channel, channel.ID).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channel": channel})
}

// DeleteChannel removes the channel and, in the same transaction, its
// videos together with their comments and reactions. Leaving those rows
// behind would orphan them with no owner left to clean up.
func DeleteChannel(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		notFound(c, "channel")
		return
	}
	var channel models.Channel
	err := database.DB.First(&channel, id).Error
	if gorm.IsRecordNotFoundError(err) {
		notFound(c, "channel")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	if channel.OwnerID != user.ID {
		forbidden(c, "you do not own this channel")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var videoIDs []uint
		if err := tx.Model(&models.Video{}).Where("channel_id = ?", channel.ID).Pluck("id", &videoIDs).Error; err != nil {
			return err
		}
		if len(videoIDs) > 0 {
			if err := tx.Where("video_id IN (?)", videoIDs).Delete(&models.Reaction{}).Error; err != nil {
				return err
			}
			if err := tx.Where("video_id IN (?)", videoIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("channel_id = ?", channel.ID).Delete(&models.Video{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&channel).Error
	})
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "channel deleted"})
}
