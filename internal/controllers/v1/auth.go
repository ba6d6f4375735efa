package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
)

// RegisterAuthRoutes registers the routes for registration and login
// with the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", Register)

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", Login)
}

// RegisterData represents the data for creating a new user account.
type RegisterData struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Name     string `json:"name" example:"Jane"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginData represents the credentials for logging in.
type LoginData struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse is returned after a successful registration or login.
type SessionResponse struct {
	Data  *Session `json:"data"`  // The session, if one was created
	Error *string  `json:"error"` // The error, if any occurred
}

type Session struct {
	Token string      `json:"token"` // Bearer token for all further requests
	User  models.User `json:"user"`
}

// Register creates a new user account and logs it in.
func Register(c *gin.Context) {
	var data RegisterData
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{Error: &s})
		return
	}

	user := models.User{
		Email: data.Email,
		Name:  data.Name,
	}

	err = user.SetPassword(data.Password)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{Error: &s})
		return
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{Error: &s})
		return
	}

	token, err := newToken(user.ID)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{Data: &Session{Token: token, User: user}})
}

// Login verifies the credentials and returns a session token.
func Login(c *gin.Context) {
	var data LoginData
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SessionResponse{Error: &s})
		return
	}

	user, err := models.UserByEmail(models.DB, data.Email)
	if err != nil || !user.CheckPassword(data.Password) {
		// Do not leak whether the email is registered
		s := models.ErrWrongCredentials.Error()
		c.JSON(status(models.ErrWrongCredentials), SessionResponse{Error: &s})
		return
	}

	token, err := newToken(user.ID)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Data: &Session{Token: token, User: user}})
}
