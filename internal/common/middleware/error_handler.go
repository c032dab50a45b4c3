package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/logger"
)

// RequestID propagates or assigns an X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// ErrorHandler recovers panics into a uniform JSON error envelope.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := GetRequestID(c)

		logger.Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		appErr := errors.New(errors.ErrCodeInternal, "Internal server error").
			WithDetail("panic", fmt.Sprintf("%v", recovered))

		Fail(c, appErr)
	})
}

// ErrorResponse is the JSON envelope for failed requests.
type ErrorResponse struct {
	Success   bool             `json:"success"`
	Error     *errors.AppError `json:"error"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
	Path      string           `json:"path,omitempty"`
	Method    string           `json:"method,omitempty"`
}

// Fail aborts the request with the status mapped from the error code.
func Fail(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Wrap(err, errors.ErrCodeInternal, "Internal server error")
	}
	appErr.WithRequestID(GetRequestID(c))

	statusCode := httpStatusCode(appErr)
	if statusCode >= http.StatusInternalServerError {
		logger.Error().Err(appErr).
			Str("request_id", appErr.RequestID).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	} else {
		logger.Warn().Err(appErr).
			Str("request_id", appErr.RequestID).
			Str("path", c.Request.URL.Path).
			Msg("Request rejected")
	}

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now(),
		RequestID: appErr.RequestID,
		Path:      c.Request.URL.Path,
		Method:    c.Request.Method,
	})
}

func httpStatusCode(appErr *errors.AppError) int {
	switch appErr.Code {
	case errors.ErrCodeValidation, errors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden, errors.ErrCodeBridgeUnavailable:
		return http.StatusForbidden
	case errors.ErrCodeConflict, errors.ErrCodeOrderInFlight, errors.ErrCodeIllegalTransition:
		return http.StatusConflict
	case errors.ErrCodeConfirmationTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUpstreamAPI, errors.ErrCodeTelegramAPI:
		return http.StatusBadGateway
	case errors.ErrCodeCacheError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetRequestID returns the id assigned by RequestID.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
