package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidshare/cmd/config"
	"vidshare/pkg/s3"
)

// Asset uploads cover avatars, banners and thumbnails; video media itself
// lives at external URLs.
const maxUploadSize = 10 << 20

// UploadAsset stores the posted file on S3 when a bucket is configured,
// otherwise under the local uploads directory, and returns its URL.
func UploadAsset(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file field is required")
		return
	}
	if file.Size > maxUploadSize {
		badRequest(c, "file exceeds the 10MB limit")
		return
	}

	key := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		serverError(c, err)
		return
	}
	defer src.Close()

	if s3.Enabled() {
		url, err := s3.UploadFile(src, key)
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"url": url})
		return
	}

	if err := os.MkdirAll(config.UploadsDir, 0o755); err != nil {
		serverError(c, err)
		return
	}
	dst, err := os.Create(filepath.Join(config.UploadsDir, key))
	if err != nil {
		serverError(c, err)
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": "/uploads/" + key})
}
