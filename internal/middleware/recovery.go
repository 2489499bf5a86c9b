package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stall-marketplace/internal/logger"
	"stall-marketplace/pkg/utils"
)

// RecoveryMiddleware turns panics into the 500 envelope. The stack is only
// echoed to the client outside production.
func RecoveryMiddleware(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			stack := string(debug.Stack())
			logger.ForRequest(GetRequestID(c)).Error("Panic recovered",
				zap.Any("panic", recovered),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("stack", stack),
			)

			if production {
				utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
			} else {
				utils.ErrorResponseWithStack(c, http.StatusInternalServerError, fmt.Sprint(recovered), stack)
			}
			c.Abort()
		}()

		c.Next()
	}
}
