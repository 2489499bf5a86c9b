package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stall-marketplace/pkg/utils"
)

// Context keys populated by AuthMiddleware.
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextRole     = "role"
	ContextUsername = "username"
	ContextClaims   = "claims"
)

// AuthMiddleware accepts the session cookie or a bearer header. A stale cookie
// does not shadow a valid header.
func AuthMiddleware(secret, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidates := tokensFromRequest(c, cookieName)
		if len(candidates) == 0 {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		var claims *utils.Claims
		for _, token := range candidates {
			if parsed, err := utils.ValidateToken(token, secret); err == nil {
				claims = parsed
				break
			}
		}
		if claims == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// tokensFromRequest lists the supplied tokens, cookie first.
func tokensFromRequest(c *gin.Context, cookieName string) []string {
	var tokens []string
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		tokens = append(tokens, cookie)
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if bearer := strings.TrimSpace(parts[1]); bearer != "" {
			tokens = append(tokens, bearer)
		}
	}
	return tokens
}

// CurrentUserID returns the authenticated caller's id.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
