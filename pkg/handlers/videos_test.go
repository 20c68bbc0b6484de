package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidshare/pkg/database"
	"vidshare/pkg/models"
)

type reactResponse struct {
	Likes      int64 `json:"likes"`
	Dislikes   int64 `json:"dislikes"`
	UserStatus struct {
		Liked    bool `json:"liked"`
		Disliked bool `json:"disliked"`
	} `json:"userStatus"`
}

func sendReaction(t *testing.T, r *gin.Engine, token string, videoID uint, endpoint, action string) reactResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/videos/%d/%s", videoID, endpoint), token, gin.H{"action": action})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp reactResponse
	decode(t, w, &resp)
	return resp
}

func TestUploadRequiresChannelOwnership(t *testing.T) {
	r := setupRouter(t)
	aliceToken, _ := signupAndLogin(t, r, "alice", "alice@x.com", "secret1")
	bobToken, _ := signupAndLogin(t, r, "bob", "bob@x.com", "secret1")
	channelID := createChannel(t, r, aliceToken, "Alice Vlogs")

	w := doJSON(t, r, http.MethodPost, "/api/videos", bobToken, gin.H{
		"title":     "intruder",
		"videoUrl":  "https://cdn.example.com/v.mp4",
		"channelId": channelID,
		"category":  "Travel",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/videos", aliceToken, gin.H{
		"title":     "mine",
		"videoUrl":  "https://cdn.example.com/v.mp4",
		"channelId": 9999,
		"category":  "Travel",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadAssignsRandomDuration(t *testing.T) {
	r := setupRouter(t)
	token, _ := signupAndLogin(t, r, "alice", "alice@x.com", "secret1")
	channelID := createChannel(t, r, token, "Alice Vlogs")
	videoID := createVideo(t, r, token, channelID, "trip")

	var video models.Video
	require.NoError(t, database.DB.First(&video, videoID).Error)
	assert.Regexp(t, `^\d{1,2}:[0-5]\d$`, video.Duration)

	// A supplied duration is stored as-is.
	w := doJSON(t, r, http.MethodPost, "/api/videos", token, gin.H{
		"title":     "timed",
		"videoUrl":  "https://cdn.example.com/t.mp4",
		"channelId": channelID,
		"category":  "Travel",
		"duration":  "4:20",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Video struct {
			Duration string `json:"duration"`
		} `json:"video"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "4:20", resp.Video.Duration)
}

func TestLikeDislikeMutualExclusion(t *testing.T) {
	r := setupRouter(t)
	token, _ := signupAndLogin(t, r, "alice", "alice@x.com", "secret1")
	channelID := createChannel(t, r, token, "Alice Vlogs")
	videoID := createVideo(t, r, token, channelID, "trip")

	resp := sendReaction(t, r, token, videoID, "like", "like")
	assert.Equal(t, int64(1), resp.Likes)
	assert.True(t, resp.UserStatus.Liked)
	assert.False(t, resp.UserStatus.Disliked)

	// Switching sides removes the like.
	resp = sendReaction(t, r, token, videoID, "dislike", "dislike")
	assert.Equal(t, int64(0), resp.Likes)
	assert.Equal(t, int64(1), resp.Dislikes)
	assert.False(t, resp.UserStatus.Liked)
	assert.True(t, resp.UserStatus.Disliked)

	var count int64
	database.DB.Model(&models.Reaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLikeTwiceDoesNotDoubleCount(t *testing.T) {
	r := setupRouter(t)
	token, _ := signupAndLogin(t, r, "alice", "alice@x.com", "secret1")
	channelID := createChannel(t, r, token, "Alice Vlogs")
	videoID := createVideo(t, r, token, channelID, "trip")

	sendReaction(t, r, token, videoID, "like", "like")
	resp := sendReaction(t, r, token, videoID, "like", "like")
	assert.Equal(t, int64(1), resp.Likes)
}

func TestRemoveWithoutReactionIsIdempotent(t *testing.T) {
	r := setupRouter(t)
	token, _ := signupAndLogin(t, r, "alice", "alice@x.com", "secret1")
	channelID := createChannel(t, r, token, "Alice Vlogs")
	videoID := createVideo(t, r, token, channelID, "trip")

	resp := sendReaction(t, r, token, videoID, "like", "remove")
	assert.Equal(t, int64(0), resp.Likes)

	// Remove after a real like, then remove again: still floored at zero.
	sendReaction(t, r, token, videoID, "like", "like")
	sendReaction(t, r, token, videoID, "like", "remove")
	resp = sendReaction(t, r, token, videoID, "like", "remove")
	assert.Equal(t, int64(0), resp.Likes)
}

func TestReactRejectsMismatchedAction(t *testing.T) {
	r := setupRouter(t)
	token, _ := signupAndLogin(t, r, "alice", "alice@x.com", "secret1")
	channelID := createChannel(t, r, token, "Alice Vlogs")
	videoID := createVideo(t, r, token, channelID, "trip")

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/videos/%d/like", videoID), token, gin.H{"action": "dislike"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewIncrementsOnlyWithIdentity(t *testing.T) {
	r := setupRouter(t)
	token, _ := signupAndLogin(t, r, "alice", "alice@x.com", "secret1")
	channelID := createChannel(t, r, token, "Alice Vlogs")
	videoID := createVideo(t, r, token, channelID, "trip")

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/videos/%d/view", videoID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var video models.Video
	require.NoError(t, database.DB.First(&video, videoID).Error)
	assert.Equal(t, int64(0), video.Views)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/videos/%d/view", videoID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, database.DB.First(&video, videoID).Error)
	assert.Equal(t, int64(1), video.Views)
}

func TestDeleteVideoRemovesItFromChannel(t *testing.T) {
	r := setupRouter(t)
	token, _ := signupAndLogin(t, r, "alice", "alice@x.com", "secret1")
	channelID := createChannel(t, r, token, "Alice Vlogs")
	videoID := createVideo(t, r, token, channelID, "trip")

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/videos/%d", videoID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/channels/%d", channelID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Channel struct {
			Videos []interface{} `json:"videos"`
		} `json:"channel"`
	}
	decode(t, w, &resp)
	assert.Empty(t, resp.Channel.Videos)
}

func TestDeleteVideoUploaderOnly(t *testing.T) {
	r := setupRouter(t)
	aliceToken, _ := signupAndLogin(t, r, "alice", "alice@x.com", "secret1")
	bobToken, _ := signupAndLogin(t, r, "bob", "bob@x.com", "secret1")
	channelID := createChannel(t, r, aliceToken, "Alice Vlogs")
	videoID := createVideo(t, r, aliceToken, channelID, "trip")

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/videos/%d", videoID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListVideosFilterSearchPagination(t *testing.T) {
	r := setupRouter(t)
	token, _ := signupAndLogin(t, r, "alice", "alice@x.com", "secret1")
	channelID := createChannel(t, r, token, "Alice Vlogs")

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/videos", token, gin.H{
			"title":     fmt.Sprintf("gaming session %d", i),
			"videoUrl":  "https://cdn.example.com/g.mp4",
			"channelId": channelID,
			"category":  "Gaming",
			"tags":      []string{"letsplay"},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := doJSON(t, r, http.MethodPost, "/api/videos", token, gin.H{
		"title":     "mountain hike",
		"videoUrl":  "https://cdn.example.com/h.mp4",
		"channelId": channelID,
		"category":  "Travel",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Videos []struct {
			Title string `json:"title"`
		} `json:"videos"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"totalPages"`
	}

	w = doJSON(t, r, http.MethodGet, "/api/videos?category=Gaming", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, int64(3), resp.Total)

	// "All" disables the category filter.
	w = doJSON(t, r, http.MethodGet, "/api/videos?category=All", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, int64(4), resp.Total)

	// Free-text search matches titles and tags, case-insensitively.
	w = doJSON(t, r, http.MethodGet, "/api/videos?search=HIKE", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	require.Equal(t, int64(1), resp.Total)
	assert.Equal(t, "mountain hike", resp.Videos[0].Title)

	w = doJSON(t, r, http.MethodGet, "/api/videos?search=letsplay", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, int64(3), resp.Total)

	w = doJSON(t, r, http.MethodGet, "/api/videos?page=2&limit=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, int64(4), resp.Total)
	assert.Equal(t, int64(2), resp.TotalPages)
	assert.Len(t, resp.Videos, 1)
}

func TestGetVideoUserStatus(t *testing.T) {
	r := setupRouter(t)
	token, _ := signupAndLogin(t, r, "alice", "alice@x.com", "secret1")
	channelID := createChannel(t, r, token, "Alice Vlogs")
	videoID := createVideo(t, r, token, channelID, "trip")
	sendReaction(t, r, token, videoID, "like", "like")

	var resp struct {
		UserStatus struct {
			Liked    bool `json:"liked"`
			Disliked bool `json:"disliked"`
		} `json:"userStatus"`
	}

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/videos/%d", videoID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.True(t, resp.UserStatus.Liked)

	// Anonymous callers get a blank status.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/videos/%d", videoID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.False(t, resp.UserStatus.Liked)
}

func TestListVideosByUserSelfOnly(t *testing.T) {
	r := setupRouter(t)
	aliceToken, aliceID := signupAndLogin(t, r, "alice", "alice@x.com", "secret1")
	bobToken, _ := signupAndLogin(t, r, "bob", "bob@x.com", "secret1")
	channelID := createChannel(t, r, aliceToken, "Alice Vlogs")
	createVideo(t, r, aliceToken, channelID, "trip")

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/videos/user/%d", aliceID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/videos/user/%d", aliceID), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Videos []interface{} `json:"videos"`
	}
	decode(t, w, &resp)
	assert.Len(t, resp.Videos, 1)
}

func TestUpdateVideoEditableFields(t *testing.T) {
	r := setupRouter(t)
	token, _ := signupAndLogin(t, r, "alice", "alice@x.com", "secret1")
	channelID := createChannel(t, r, token, "Alice Vlogs")
	videoID := createVideo(t, r, token, channelID, "trip")

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/videos/%d", videoID), token, gin.H{
		"title":       "trip, revisited",
		"description": "now with commentary",
		"category":    "Comedy",
		"tags":        []string{"travel", "funny"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var video models.Video
	require.NoError(t, database.DB.First(&video, videoID).Error)
	assert.Equal(t, "trip, revisited", video.Title)
	assert.Equal(t, "Comedy", video.Category)
	assert.Equal(t, models.StringList{"travel", "funny"}, video.Tags)
}
