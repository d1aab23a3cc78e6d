package errors

import (
	"net/http"

	"vidtube/internal/errors"
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
	// Validation
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"request validation failed",
		"",
	)

	// Authentication
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"authentication credentials missing",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid username/email or password",
		"",
	)

	ErrInvalidAccessToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_ACCESS_TOKEN",
		"invalid or expired access token",
		"",
	)

	ErrInvalidRefreshToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_REFRESH_TOKEN",
		"invalid or expired refresh token",
		"",
	)

	// A structurally valid refresh token that no longer matches the stored
	// value: either rotated out by a newer login/refresh, or revoked by logout.
	ErrRefreshTokenReused = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_EXPIRED_OR_REUSED",
		"refresh token has been rotated or revoked",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"you do not have permission to perform this action",
		"",
	)

	// Resources
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrTargetNotFound = NewBaseError(
		http.StatusNotFound,
		"TARGET_NOT_FOUND",
		"toggle target not found",
		"",
	)

	// Conflicts
	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"resource conflict",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"username or email already registered",
		"",
	)

	// Upstream collaborators
	ErrMediaUploadFailed = NewBaseError(
		http.StatusServiceUnavailable,
		"MEDIA_UPLOAD_FAILED",
		"failed to upload file to media storage",
		"",
	)

	// General
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
