package response

import (
	"github.com/gin-gonic/gin"
)

// Response envelope of every API answer
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Errors    interface{} `json:"errors,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success 200 with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(CodeOK, Response{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMsg 200 with a message
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(CodeOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// Created 201
func Created(c *gin.Context, msg string, data interface{}) {
	c.JSON(CodeCreated, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// Error failure with the given HTTP status
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, Response{
		Success:   false,
		Message:   msg,
		RequestID: requestID(c),
	})
}

// ErrorWithData failure carrying a machine-readable payload
func ErrorWithData(c *gin.Context, statusCode int, msg string, data interface{}) {
	c.JSON(statusCode, Response{
		Success:   false,
		Message:   msg,
		Data:      data,
		RequestID: requestID(c),
	})
}

// ValidationFailed 400 with per-field errors
func ValidationFailed(c *gin.Context, msg string, errors interface{}) {
	c.JSON(CodeBadRequest, Response{
		Success:   false,
		Message:   msg,
		Errors:    errors,
		RequestID: requestID(c),
	})
}

// NotFound 404
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 403
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

// BadRequest 400
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context, msg string) {
	Error(c, CodeTooManyRequests, msg)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
