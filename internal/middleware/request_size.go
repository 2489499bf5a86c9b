package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stall-marketplace/internal/logger"
	"stall-marketplace/pkg/utils"
)

// Bodies are JSON only; logos, avatars and item images travel as references.
const DefaultMaxRequestSize = 1 << 20

// RequestSizeLimitMiddleware refuses declared oversize bodies with 413 and caps
// undeclared ones so binding fails instead of buffering them.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}
	limit := strconv.FormatInt(maxSize, 10)

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			logger.ForRequest(GetRequestID(c)).Warn("Request body over limit",
				zap.String("path", c.Request.URL.Path),
				zap.Int64("content_length", c.Request.ContentLength),
				zap.String("limit_bytes", limit),
				zap.String("event", "request_too_large"),
			)
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body exceeds "+limit+" bytes")
			c.Abort()
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		}
		c.Next()
	}
}
