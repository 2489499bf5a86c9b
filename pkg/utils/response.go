package utils

import (
	"github.com/gin-gonic/gin"
)

// Response is the uniform JSON envelope for every API reply.
type Response struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Stack      string      `json:"stack,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
	})
}

// ErrorResponseWithStack is used for 500s outside production.
func ErrorResponseWithStack(c *gin.Context, statusCode int, message, stack string) {
	c.JSON(statusCode, Response{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
		Stack:      stack,
	})
}
