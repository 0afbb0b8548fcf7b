package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusSessionExpired tells the client that both tokens are gone and it must log in again.
const StatusSessionExpired = 440

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.Int("status", status), zap.String("details", details))
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// SessionExpired aborts with the 440 convention.
func SessionExpired(c *gin.Context) {
	c.AbortWithStatusJSON(StatusSessionExpired, gin.H{"message": "Session expired"})
}

// AppError carries the HTTP status a service wants the handler to answer with.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError builds an AppError without a cause.
func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Internal wraps an unexpected failure as a 500.
func Internal(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// BadRequest, Unauthorized, Forbidden and NotFound are shorthands for NewAppError.
func BadRequest(message string) *AppError   { return NewAppError(http.StatusBadRequest, message) }
func Unauthorized(message string) *AppError { return NewAppError(http.StatusUnauthorized, message) }
func Forbidden(message string) *AppError    { return NewAppError(http.StatusForbidden, message) }
func NotFound(message string) *AppError     { return NewAppError(http.StatusNotFound, message) }

// RespondError maps err to a JSON error response. Unknown errors become 500s
// and their details are only logged.
func RespondError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error(appErr.Message, zap.Error(appErr.Err))
		} else {
			logger.Debug("request rejected", zap.Int("status", appErr.Code), zap.String("reason", appErr.Message))
		}
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}
	logger.Error("unexpected error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
}
