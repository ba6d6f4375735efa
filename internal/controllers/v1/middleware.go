package v1

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/centsible/backend/internal/models"
)

const userContextKey = "centsible:user"

// AuthMiddleware verifies the bearer token of the request and stores
// the authenticated user in the request context. Requests without a
// valid token are rejected with 401.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(status(errNoToken), httpError{Error: errNoToken.Error()})
			return
		}

		claims, err := parseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(status(err), httpError{Error: err.Error()})
			return
		}

		var user models.User
		err = models.DB.First(&user, "id = ?", claims.UserID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, models.ErrResourceNotFound) {
				err = errTokenInvalid
			}
			c.AbortWithStatusJSON(status(err), httpError{Error: err.Error()})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// currentUser returns the user the auth middleware stored for this request.
func currentUser(c *gin.Context) models.User {
	return c.MustGet(userContextKey).(models.User)
}
