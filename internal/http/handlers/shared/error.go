package shared

import (
	"errors"

	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/logger"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog logger carrying the request_id
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondErrorWithMsg answers an error and logs the cause when there is one.
// Server errors expose the cause only while gin runs in debug mode.
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	failure := response.Failure(code, msg, err)
	if failure.Cause != nil {
		RequestLog(c).Errorw("handler_error", "status", failure.Status, "error", failure)
		if failure.Internal() && gin.IsDebugging() {
			response.ErrorWithData(c, failure.Status, failure.Message, gin.H{"error": failure.Cause.Error()})
			return
		}
	}
	response.Error(c, failure.Status, failure.Message)
}

// MappedError one row of a handler's error table
type MappedError struct {
	Target  error
	Code    int
	Message string
}

// commonErrorRules apply after the handler's own table
var commonErrorRules = []MappedError{
	{Target: service.ErrUserDisabled, Code: response.CodeForbidden, Message: "Account is disabled"},
	{Target: service.ErrUnauthorized, Code: response.CodeUnauthorized, Message: "Authentication required"},
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Message: "Access denied"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Message: "Resource not found"},
}

// RespondMappedError answers a service error: typed errors carry their payload,
// sentinels go through rules then the common table, anything else is a 500 with fallbackMsg.
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackMsg string) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		response.ValidationFailed(c, "Validation failed", verr.Fields)
		return
	}
	var stockErr *service.StockError
	if errors.As(err, &stockErr) {
		response.ErrorWithData(c, response.CodeBadRequest, "Insufficient stock for "+stockErr.ProductName, stockErr)
		return
	}
	var transitionErr *service.TransitionError
	if errors.As(err, &transitionErr) {
		response.ErrorWithData(c, response.CodeBadRequest, "Invalid status transition", transitionErr)
		return
	}
	for _, group := range [][]MappedError{rules, commonErrorRules} {
		for _, rule := range group {
			if errors.Is(err, rule.Target) {
				RespondErrorWithMsg(c, rule.Code, rule.Message, nil)
				return
			}
		}
	}
	RespondErrorWithMsg(c, response.CodeInternal, fallbackMsg, err)
}

// ConcatMappedErrors joins rule groups; earlier groups win
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
