package handlers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"vidshare/pkg/auth"
	"vidshare/pkg/database"
	"vidshare/pkg/middleware"
	"vidshare/pkg/models"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Signup(c *gin.Context) {
	var req signupRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	errs := map[string]string{}
	if !usernameRe.MatchString(req.Username) {
		errs["username"] = "username must be 3-20 characters: letters, digits or underscore"
	}
	if !emailRe.MatchString(req.Email) {
		errs["email"] = "invalid email address"
	}
	if len(req.Password) < 6 {
		errs["password"] = "password must be at least 6 characters"
	}
	if len(errs) > 0 {
		validationError(c, errs)
		return
	}

	// Single combined existence query; the response names whichever field
	// collided.
	var existing models.User
	err := database.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		if existing.Username == req.Username {
			validationError(c, map[string]string{"username": "username already taken"})
		} else {
			validationError(c, map[string]string{"email": "email already registered"})
		}
		return
	}
	if !gorm.IsRecordNotFoundError(err) {
		serverError(c, err)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password, // hashed by the model's BeforeCreate hook
		Avatar:   models.DefaultAvatarURL,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		serverError(c, err)
		return
	}

	// No token on signup; the client logs in explicitly.
	c.JSON(http.StatusCreated, gin.H{"status": "account created"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(c *gin.Context) {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	errs := map[string]string{}
	if !emailRe.MatchString(req.Email) {
		errs["email"] = "invalid email address"
	}
	if req.Password == "" {
		errs["password"] = "password is required"
	}
	if len(errs) > 0 {
		validationError(c, errs)
		return
	}

	// Same message for unknown email and wrong password, so callers cannot
	// enumerate accounts.
	var user models.User
	err := database.DB.Where("email = ?", req.Email).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	if !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := auth.GenerateJWT(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"avatar":   user.Avatar,
		},
	})
}

// Me returns the caller's profile with owned channels populated.
func Me(c *gin.Context) {
	current, _ := middleware.CurrentUser(c)

	var user models.User
	if err := database.DB.Preload("Channels").First(&user, current.ID).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
