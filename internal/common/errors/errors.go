package errors

import (
	"fmt"
	"time"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"

	ErrCodeOrderNotFound       ErrorCode = "ORDER_NOT_FOUND"
	ErrCodeOrderInFlight       ErrorCode = "ORDER_IN_FLIGHT"
	ErrCodeIllegalTransition   ErrorCode = "ILLEGAL_STATUS_TRANSITION"
	ErrCodePaymentUnavailable  ErrorCode = "PAYMENT_METHOD_UNAVAILABLE"
	ErrCodeBridgeUnavailable   ErrorCode = "TELEGRAM_BRIDGE_UNAVAILABLE"
	ErrCodeConfirmationTimeout ErrorCode = "CONFIRMATION_TIMEOUT"

	ErrCodeUpstreamAPI ErrorCode = "UPSTREAM_API_ERROR"
	ErrCodeTelegramAPI ErrorCode = "TELEGRAM_API_ERROR"
	ErrCodeCacheError  ErrorCode = "CACHE_ERROR"
)

// AppError is the typed error carried through handlers and middleware.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) IsNotFound() bool {
	return e.Code == ErrCodeNotFound || e.Code == ErrCodeOrderNotFound
}

func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation || e.Code == ErrCodeBadRequest
}

// WithDetail attaches structured context to the error.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

func NewOrderNotFoundError(orderID string) *AppError {
	return New(ErrCodeOrderNotFound, fmt.Sprintf("Order not found: %s", orderID)).
		WithDetail("order_id", orderID)
}

func NewUnauthorizedError(reason string) *AppError {
	return New(ErrCodeUnauthorized, fmt.Sprintf("Unauthorized: %s", reason)).
		WithDetail("reason", reason)
}

func NewForbiddenError(reason string) *AppError {
	return New(ErrCodeForbidden, fmt.Sprintf("Forbidden: %s", reason)).
		WithDetail("reason", reason)
}

func NewIllegalTransitionError(from, to string) *AppError {
	return New(ErrCodeIllegalTransition, fmt.Sprintf("Status cannot move from %s to %s", from, to)).
		WithDetail("from", from).
		WithDetail("to", to)
}

func NewBridgeUnavailableError() *AppError {
	return New(ErrCodeBridgeUnavailable, "Telegram WebApp bridge is not available")
}

func NewUpstreamError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeUpstreamAPI, fmt.Sprintf("Storefront API operation failed: %s", operation)).
		WithDetail("operation", operation)
}

func NewCacheError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeCacheError, fmt.Sprintf("Cache operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// AsAppError unwraps err into an AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
