package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskflow/taskflow-api/internal/constants"
	apierrors "github.com/taskflow/taskflow-api/internal/errors"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/services"
	"gorm.io/gorm"
)

// RequireAuth validates the bearer token on the request and loads the
// authenticated user into the context. Requests without a valid, unexpired
// access token are rejected with 401.
func RequireAuth(tokens *services.TokenService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateAccessToken(token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := userRepo.FindByEmail(claims.Subject)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.Unauthorized(c, "Invalid or expired token")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		if !user.IsActive {
			apierrors.Unauthorized(c, "Account is deactivated")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
