package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"vidshare/pkg/database"
	"vidshare/pkg/middleware"
	"vidshare/pkg/models"
)

type commentCreateRequest struct {
	VideoID uint   `json:"videoId"`
	Text    string `json:"text"`
}

func validateCommentText(text string) map[string]string {
	if text == "" || len(text) > 500 {
		return map[string]string{"text": "text must be 1-500 characters"}
	}
	return nil
}

func CreateComment(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req commentCreateRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := validateCommentText(req.Text); errs != nil {
		validationError(c, errs)
		return
	}

	var video models.Video
	err := database.DB.First(&video, req.VideoID).Error
	if gorm.IsRecordNotFoundError(err) {
		notFound(c, "video")
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	comment := models.Comment{
		CommentID: uuid.New().String(),
		VideoID:   video.ID,
		UserID:    user.ID,
		Text:      req.Text,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		serverError(c, err)
		return
	}
	if err := database.DB.Preload("User").First(&comment, comment.ID).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func ListCommentsByVideo(c *gin.Context) {
	videoID, ok := paramID(c, "videoId")
	if !ok {
		notFound(c, "video")
		return
	}

	p := parsePagination(c)
	q := database.DB.Model(&models.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		serverError(c, err)
		return
	}
	var comments []models.Comment
	err := q.Preload("User").
		Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&comments).Error
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comments":   comments,
		"page":       p.Page,
		"limit":      p.Limit,
		"total":      total,
		"totalPages": totalPages(total, p.Limit),
	})
}

// loadOwnComment resolves the string commentId and enforces authorship.
func loadOwnComment(c *gin.Context) (*models.Comment, bool) {
	user, _ := middleware.CurrentUser(c)

	var comment models.Comment
	err := database.DB.Where("comment_id = ?", c.Param("commentId")).First(&comment).Error
	if gorm.IsRecordNotFoundError(err) {
		notFound(c, "comment")
		return nil, false
	}
	if err != nil {
		serverError(c, err)
		return nil, false
	}
	if comment.UserID != user.ID {
		forbidden(c, "you did not write this comment")
		return nil, false
	}
	return &comment, true
}

type commentUpdateRequest struct {
	Text string `json:"text"`
}

func UpdateComment(c *gin.Context) {
	comment, ok := loadOwnComment(c)
	if !ok {
		return
	}

	var req commentUpdateRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if errs := validateCommentText(req.Text); errs != nil {
		validationError(c, errs)
		return
	}

	if err := database.DB.Model(comment).Update("text", req.Text).Error; err != nil {
		serverError(c, err)
		return
	}
	if err := database.DB.Preload("User").First(comment, comment.ID).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

func DeleteComment(c *gin.Context) {
	comment, ok := loadOwnComment(c)
	if !ok {
		return
	}
	if err := database.DB.Delete(comment).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "comment deleted"})
}
