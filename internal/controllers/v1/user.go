package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
)

// RegisterUserRoutes registers the routes for the user profile with
// the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/profile", httputil.OptionsGetPatch)
	r.GET("/profile", GetProfile)
	r.PATCH("/profile", UpdateProfile)
}

// ProfileEditable represents the profile fields the user can change.
// The email identifies the account and cannot be changed.
type ProfileEditable struct {
	Name     *string `json:"name" example:"Jane"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

type UserResponse struct {
	Data  *models.User `json:"data"`  // The user's profile
	Error *string      `json:"error"` // The error, if any occurred
}

// GetProfile returns the profile of the authenticated user.
func GetProfile(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, UserResponse{Data: &user})
}

// UpdateProfile changes the name and/or the password of the
// authenticated user. At least one of the two must be sent.
func UpdateProfile(c *gin.Context) {
	var editable ProfileEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{Error: &s})
		return
	}

	// A name that is empty after trimming counts as not set.
	var name string
	if editable.Name != nil {
		name = strings.TrimSpace(*editable.Name)
	}

	if name == "" && editable.Password == nil {
		s := errProfileNoFields.Error()
		c.JSON(status(errProfileNoFields), UserResponse{Error: &s})
		return
	}

	user := currentUser(c)

	if name != "" {
		user.Name = name
	}

	if editable.Password != nil {
		err = user.SetPassword(*editable.Password)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), UserResponse{Error: &s})
			return
		}
	}

	err = models.DB.Save(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: &user})
}
