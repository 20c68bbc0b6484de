package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"vidshare/cmd/config"
	"vidshare/pkg/database"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.JWTSecret = "test-secret"
	config.TokenTTL = time.Hour
	config.Env = "development"

	db, err := database.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	database.DB = db
	t.Cleanup(func() { db.Close() })

	r := gin.New()
	RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func signupAndLogin(t *testing.T, r *gin.Engine, username, email, password string) (string, uint) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"username": username, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func createChannel(t *testing.T, r *gin.Engine, token, name string) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/channels/create", token, gin.H{
		"channelName": name, "description": "test channel", "category": "Travel",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Channel struct {
			ID uint `json:"id"`
		} `json:"channel"`
	}
	decode(t, w, &resp)
	return resp.Channel.ID
}

func createVideo(t *testing.T, r *gin.Engine, token string, channelID uint, title string) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/videos", token, gin.H{
		"title":     title,
		"videoUrl":  "https://cdn.example.com/" + title + ".mp4",
		"channelId": channelID,
		"category":  "Travel",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Video struct {
			ID uint `json:"id"`
		} `json:"video"`
	}
	decode(t, w, &resp)
	return resp.Video.ID
}
