package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vidshare/cmd/config"
)

func validationError(c *gin.Context, errs map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"error": msg})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

// serverError hides the underlying error outside development mode.
func serverError(c *gin.Context, err error) {
	logrus.WithError(err).Error("request failed")
	msg := "internal server error"
	if config.Env == "development" {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// paramID parses a numeric path parameter. A non-numeric id can never
// reference an existing row, so it reports false and the caller 404s.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

const (
	defaultPageSize = 12
	maxPageSize     = 50
)

type pagination struct {
	Page  int
	Limit int
}

func parsePagination(c *gin.Context) pagination {
	p := pagination{Page: 1, Limit: defaultPageSize}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		p.Limit = v
		if p.Limit > maxPageSize {
			p.Limit = maxPageSize
		}
	}
	return p
}

func (p pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
