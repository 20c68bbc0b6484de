package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"vidshare/pkg/database"
	"vidshare/pkg/middleware"
	"vidshare/pkg/models"
)

var durationRe = regexp.MustCompile(`^\d{1,3}:[0-5]\d$`)

// randomDuration synthesizes a display duration when the uploader supplies
// none. The stored media is an external URL, so there is nothing to probe;
// the value is a placeholder drawn once and persisted, never recomputed.
func randomDuration() string {
	return fmt.Sprintf("%d:%02d", 2+rand.Intn(14), rand.Intn(60))
}

type videoCreateRequest struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	VideoURL     string            `json:"videoUrl"`
	ThumbnailURL string            `json:"thumbnailUrl"`
	ChannelID    uint              `json:"channelId"`
	Category     string            `json:"category"`
	Duration     string            `json:"duration"`
	Tags         models.StringList `json:"tags"`
}

func (r videoCreateRequest) validate() map[string]string {
	errs := map[string]string{}
	if r.Title == "" || len(r.Title) > 100 {
		errs["title"] = "title must be 1-100 characters"
	}
	if len(r.Description) > 1000 {
		errs["description"] = "description must be at most 1000 characters"
	}
	if !isURL(r.VideoURL) {
		errs["videoUrl"] = "video URL must be a valid URL"
	}
	if r.ThumbnailURL != "" && !isURL(r.ThumbnailURL) {
		errs["thumbnailUrl"] = "thumbnail URL must be a valid URL"
	}
	if !models.ValidCategory(r.Category) {
		errs["category"] = "unknown category"
	}
	if r.ChannelID == 0 {
		errs["channelId"] = "channelId is required"
	}
	if r.Duration != "" && !durationRe.MatchString(r.Duration) {
		errs["duration"] = "duration must look like M:SS"
	}
	return errs
}

func CreateVideo(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req videoCreateRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		validationError(c, errs)
		return
	}

	var channel models.Channel
	err := database.DB.First(&channel, req.ChannelID).Error
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

	duration := req.Duration
	if duration == "" {
		duration = randomDuration()
	}
	video := models.Video{
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		ChannelID:    channel.ID,
		UploaderID:   user.ID,
		Category:     req.Category,
		UploadDate:   time.Now(),
		Duration:     duration,
		Tags:         req.Tags,
	}
	if err := database.DB.Create(&video).Error; err != nil {
		serverError(c, err)
		return
	}
	if err := database.DB.Preload("Channel").Preload("Uploader").First(&video, video.ID).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"video": video})
}

// ListVideos supports a category filter (exact match, "All" disables it),
// free-text search over title/description/tags and pagination, newest
// first.
func ListVideos(c *gin.Context) {
	p := parsePagination(c)

	q := database.DB.Model(&models.Video{})
	if cat := c.Query("category"); cat != "" && cat != "All" {
		q = q.Where("category = ?", cat)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		serverError(c, err)
		return
	}
	var videos []models.Video
	err := q.Preload("Channel").Preload("Uploader").
		Order("upload_date DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&videos).Error
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos":     videos,
		"page":       p.Page,
		"limit":      p.Limit,
		"total":      total,
		"totalPages": totalPages(total, p.Limit),
	})
}

// userStatus is computed per request from the reactions table; it is never
// stored on the video.
func reactionStatus(userID, videoID uint) gin.H {
	status := gin.H{"liked": false, "disliked": false}
	var r models.Reaction
	err := database.DB.Where("user_id = ? AND video_id = ?", userID, videoID).First(&r).Error
	if err == nil {
		status["liked"] = r.Kind == models.ReactionLike
		status["disliked"] = r.Kind == models.ReactionDislike
	}
	return status
}

func GetVideo(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		notFound(c, "video")
		return
	}

	var video models.Video
	err := database.DB.Preload("Channel").Preload("Uploader").First(&video, id).Error
	if gorm.IsRecordNotFoundError(err) {
		notFound(c, "video")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	status := gin.H{"liked": false, "disliked": false}
	if user, ok := middleware.CurrentUser(c); ok {
		status = reactionStatus(user.ID, video.ID)
	}
	c.JSON(http.StatusOK, gin.H{"video": video, "userStatus": status})
}

// RecordView bumps the view counter, but only for identified callers.
// Repeated calls increment repeatedly; the client throttles to once per
// session.
func RecordView(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		notFound(c, "video")
		return
	}
	var video models.Video
	err := database.DB.First(&video, id).Error
	if gorm.IsRecordNotFoundError(err) {
		notFound(c, "video")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	if _, identified := middleware.CurrentUser(c); identified {
		err := database.DB.Model(&models.Video{}).Where("id = ?", video.ID).
			UpdateColumn("views", gorm.Expr("views + 1")).Error
		if err != nil {
			serverError(c, err)
			return
		}
		video.Views++
	}
	c.JSON(http.StatusOK, gin.H{"views": video.Views})
}

func ListVideosByChannel(c *gin.Context) {
	channelID, ok := paramID(c, "channelId")
	if !ok {
		notFound(c, "channel")
		return
	}
	var channel models.Channel
	err := database.DB.First(&channel, channelID).Error
	if gorm.IsRecordNotFoundError(err) {
		notFound(c, "channel")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	p := parsePagination(c)
	q := database.DB.Model(&models.Video{}).Where("channel_id = ?", channel.ID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		serverError(c, err)
		return
	}
	var videos []models.Video
	err = q.Preload("Uploader").
		Order("upload_date DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&videos).Error
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"videos":     videos,
		"page":       p.Page,
		"limit":      p.Limit,
		"total":      total,
		"totalPages": totalPages(total, p.Limit),
	})
}

type videoUpdateRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Tags        models.StringList `json:"tags"`
}

func (r videoUpdateRequest) validate() map[string]string {
	errs := map[string]string{}
	if r.Title == "" || len(r.Title) > 100 {
		errs["title"] = "title must be 1-100 characters"
	}
	if len(r.Description) > 1000 {
		errs["description"] = "description must be at most 1000 characters"
	}
	if !models.ValidCategory(r.Category) {
		errs["category"] = "unknown category"
	}
	return errs
}

// UpdateVideo edits title, description, category and tags. URLs and the
// owning channel are fixed at upload.
func UpdateVideo(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		notFound(c, "video")
		return
	}
	var video models.Video
	err := database.DB.First(&video, id).Error
	if gorm.IsRecordNotFoundError(err) {
		notFound(c, "video")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	if video.UploaderID != user.ID {
		forbidden(c, "you did not upload this video")
		return
	}

	var req videoUpdateRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		validationError(c, errs)
		return
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
		"tags":        req.Tags,
	}
	if err := database.DB.Model(&video).Updates(updates).Error; err != nil {
		serverError(c, err)
		return
	}
	if err := database.DB.Preload("Channel").Preload("Uploader").First(&video, video.ID).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video": video})
}

// DeleteVideo removes the video and its comments and reactions in one
// transaction. Row deletion also removes it from the channel's video set.
func DeleteVideo(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		notFound(c, "video")
		return
	}
	var video models.Video
	err := database.DB.First(&video, id).Error
	if gorm.IsRecordNotFoundError(err) {
		notFound(c, "video")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	if video.UploaderID != user.ID {
		forbidden(c, "you did not upload this video")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", video.ID).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", video.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&video).Error
	})
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "video deleted"})
}

func LikeVideo(c *gin.Context) {
	react(c, models.ReactionLike)
}

func DislikeVideo(c *gin.Context) {
	react(c, models.ReactionDislike)
}

func counterColumn(kind string) string {
	if kind == models.ReactionLike {
		return "likes"
	}
	return "dislikes"
}

func incrementCounter(tx *gorm.DB, videoID uint, kind string) error {
	col := counterColumn(kind)
	return tx.Model(&models.Video{}).Where("id = ?", videoID).
		UpdateColumn(col, gorm.Expr(col+" + 1")).Error
}

// decrementCounter clamps at zero so a stray remove can never drive a
// counter negative.
func decrementCounter(tx *gorm.DB, videoID uint, kind string) error {
	col := counterColumn(kind)
	return tx.Model(&models.Video{}).Where("id = ?", videoID).
		UpdateColumn(col, gorm.Expr("CASE WHEN "+col+" > 0 THEN "+col+" - 1 ELSE 0 END")).Error
}

type reactRequest struct {
	Action string `json:"action"`
}

// react applies like/dislike toggles. The caller states its intent in the
// action field; current set membership is still checked before mutating,
// so repeated calls are no-ops and switching sides removes the opposite
// reaction in the same transaction.
func react(c *gin.Context, kind string) {
	user, _ := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		notFound(c, "video")
		return
	}
	var video models.Video
	err := database.DB.First(&video, id).Error
	if gorm.IsRecordNotFoundError(err) {
		notFound(c, "video")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	var req reactRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Action != kind && req.Action != "remove" {
		validationError(c, map[string]string{"action": `action must be "` + kind + `" or "remove"`})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("user_id = ? AND video_id = ?", user.ID, video.ID).First(&existing).Error
		has := err == nil
		if err != nil && !gorm.IsRecordNotFoundError(err) {
			return err
		}

		if req.Action == "remove" {
			if !has || existing.Kind != kind {
				return nil
			}
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			return decrementCounter(tx, video.ID, kind)
		}

		switch {
		case has && existing.Kind == kind:
			return nil
		case has:
			// Switching sides: the opposite reaction goes away first.
			if err := tx.Model(&models.Reaction{}).Where("id = ?", existing.ID).
				UpdateColumn("kind", kind).Error; err != nil {
				return err
			}
			if err := decrementCounter(tx, video.ID, existing.Kind); err != nil {
				return err
			}
			return incrementCounter(tx, video.ID, kind)
		default:
			reaction := models.Reaction{UserID: user.ID, VideoID: video.ID, Kind: kind}
			if err := tx.Create(&reaction).Error; err != nil {
				return err
			}
			return incrementCounter(tx, video.ID, kind)
		}
	})
	if err != nil {
		serverError(c, err)
		return
	}

	if err := database.DB.First(&video, video.ID).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"likes":      video.Likes,
		"dislikes":   video.Dislikes,
		"userStatus": reactionStatus(user.ID, video.ID),
	})
}

// ListVideosByUser returns the caller's own uploads; other users' upload
// lists are not exposed.
func ListVideosByUser(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	userID, ok := paramID(c, "userId")
	if !ok {
		notFound(c, "user")
		return
	}
	if userID != user.ID {
		forbidden(c, "you can only list your own videos")
		return
	}

	var videos []models.Video
	err := database.DB.Where("uploader_id = ?", user.ID).
		Preload("Channel").
		Order("upload_date DESC").
		Find(&videos).Error
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}
