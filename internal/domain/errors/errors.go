// Package errors defines application-level error types carried across the
// usecase and delivery boundaries.
package errors

import (
	"net/http"

	"quotecast/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrPreferenceNotFound = NewBaseError(
		http.StatusNotFound,
		"PREFERENCE_NOT_FOUND",
		"notification preferences not found",
		"",
	)

	ErrInvalidTimezone = NewBaseError(
		http.StatusUnprocessableEntity,
		"INVALID_TIMEZONE",
		"timezone is not a valid IANA zone name",
		"",
	)

	ErrInvalidPreferredHours = NewBaseError(
		http.StatusUnprocessableEntity,
		"INVALID_PREFERRED_HOURS",
		"preferred hours must be within 0-23",
		"",
	)

	ErrInvalidNotificationsPerDay = NewBaseError(
		http.StatusUnprocessableEntity,
		"INVALID_NOTIFICATIONS_PER_DAY",
		"notifications per day must be between 1 and 20",
		"",
	)

	ErrInvalidPlatform = NewBaseError(
		http.StatusUnprocessableEntity,
		"INVALID_PLATFORM",
		"platform must be android or ios",
		"",
	)

	ErrDeviceNotFound = NewBaseError(
		http.StatusNotFound,
		"DEVICE_NOT_FOUND",
		"device token not found",
		"",
	)

	ErrDeliveryNotFound = NewBaseError(
		http.StatusNotFound,
		"DELIVERY_NOT_FOUND",
		"notification delivery not found",
		"",
	)

	ErrPushUnconfigured = NewBaseError(
		http.StatusServiceUnavailable,
		"PUSH_UNCONFIGURED",
		"push provider not configured",
		"",
	)
)

// NewDatabaseExecuteError wraps an unexpected persistence failure.
func NewDatabaseExecuteError(err error, message string) error {
	base := NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_ERROR",
		message,
		err.Error(),
	)

	return errors.WithStack(base)
}
