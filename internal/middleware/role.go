package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainUser "stall-marketplace/internal/domain/user"
	"stall-marketplace/internal/logger"
	"stall-marketplace/pkg/utils"
)

const ContextCurrentUser = "currentUser"

// liveUserMiddleware reloads the caller so deactivation and role changes take
// effect before the token expires.
func liveUserMiddleware(userRepo domainUser.Repository, allowed func(*domainUser.User) bool, deniedMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domainUser.ErrUserNotFound) {
				utils.ErrorResponse(c, http.StatusNotFound, "User not found")
			} else {
				logger.Error("Failed to load user for authorization",
					zap.String("user_id", userID.String()),
					zap.Error(err),
				)
				utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
			}
			c.Abort()
			return
		}

		if !user.IsActive {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Account is deactivated")
			c.Abort()
			return
		}

		if !allowed(user) {
			logger.Warn("Access denied",
				zap.String("user_id", user.ID.String()),
				zap.String("permission", user.PermissionLevel().String()),
				zap.String("path", c.FullPath()),
				zap.String("event", "access_denied"),
			)
			utils.ErrorResponse(c, http.StatusForbidden, deniedMessage)
			c.Abort()
			return
		}

		c.Set(ContextCurrentUser, user)
		c.Next()
	}
}

// AdminOnly admits users whose role or user type says admin.
func AdminOnly(userRepo domainUser.Repository) gin.HandlerFunc {
	return liveUserMiddleware(userRepo, (*domainUser.User).IsAdmin, "Admin access required")
}

func SellerOnly(userRepo domainUser.Repository) gin.HandlerFunc {
	return liveUserMiddleware(userRepo, (*domainUser.User).IsSeller, "Seller access required")
}

// CurrentUser returns the live record stored by AdminOnly or SellerOnly.
func CurrentUser(c *gin.Context) (*domainUser.User, bool) {
	value, exists := c.Get(ContextCurrentUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domainUser.User)
	return user, ok
}
