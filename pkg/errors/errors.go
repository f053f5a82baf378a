package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to the UI layer. Auth codes mirror the fixed
// categories the backend's error responses are mapped into.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUserDisabled       = "USER_DISABLED"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeNetworkError       = "NETWORK_ERROR"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeUnknown            = "UNKNOWN"

	CodeNotFound   = "NOT_FOUND"
	CodeBadRequest = "BAD_REQUEST"
	CodeInternal   = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func InvalidCredentials(err error) *AppError {
	return &AppError{
		Code:    CodeInvalidCredentials,
		Message: "Invalid email or password",
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func EmailExists(err error) *AppError {
	return &AppError{
		Code:    CodeEmailExists,
		Message: "This email is already registered",
		Status:  http.StatusConflict,
		Err:     err,
	}
}

func WeakPassword(err error) *AppError {
	return &AppError{
		Code:    CodeWeakPassword,
		Message: "Password is too weak. Use at least 6 characters",
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func UserNotFound(err error) *AppError {
	return &AppError{
		Code:    CodeUserNotFound,
		Message: "No account found with this email",
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func UserDisabled(err error) *AppError {
	return &AppError{
		Code:    CodeUserDisabled,
		Message: "This account has been disabled",
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func TooManyRequests(err error) *AppError {
	return &AppError{
		Code:    CodeTooManyRequests,
		Message: "Too many failed attempts. Please try again later",
		Status:  http.StatusTooManyRequests,
		Err:     err,
	}
}

func Network(err error) *AppError {
	return &AppError{
		Code:    CodeNetworkError,
		Message: "Network error. Please check your connection",
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}

func InvalidEmail(err error) *AppError {
	return &AppError{
		Code:    CodeInvalidEmail,
		Message: "Please enter a valid email address",
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unknown(err error) *AppError {
	message := "An unexpected error occurred"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &AppError{
		Code:    CodeUnknown,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Is reports whether err carries the given application error code.
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Message extracts the user-facing message from err, falling back to
// Error() for values that did not pass through this package.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
