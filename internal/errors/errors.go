package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches two domain errors by code so wrapped instances still compare
// equal to their predefined kind.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Authentication errors. BAD_CREDENTIALS deliberately covers both the
	// unknown-identifier and wrong-password cases so responses cannot be
	// used to enumerate accounts.
	ErrUnauthorized    = NewDomainError("UNAUTHORIZED", "could not validate credentials")
	ErrInvalidToken    = NewDomainError("INVALID_TOKEN", "invalid or expired token")
	ErrBadCredentials  = NewDomainError("BAD_CREDENTIALS", "incorrect username or password")
	ErrInactiveAccount = NewDomainError("INACTIVE_ACCOUNT", "inactive user")
	ErrForbidden       = NewDomainError("FORBIDDEN", "not enough permissions")

	// User errors
	ErrUserNotFound      = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrEmailExists       = NewDomainError("EMAIL_EXISTS", "email already registered")
	ErrUsernameExists    = NewDomainError("USERNAME_EXISTS", "username already taken")
	ErrIncorrectPassword = NewDomainError("INCORRECT_PASSWORD", "current password is incorrect")
	ErrSelfDeactivation  = NewDomainError("SELF_DEACTIVATION", "cannot deactivate your own account")

	// Domain resource errors
	ErrQuestionNotFound = NewDomainError("QUESTION_NOT_FOUND", "question not found")
	ErrCategoryNotFound = NewDomainError("CATEGORY_NOT_FOUND", "category not found")
	ErrCategoryExists   = NewDomainError("CATEGORY_EXISTS", "category already exists")
	ErrResponseNotFound = NewDomainError("RESPONSE_NOT_FOUND", "response not found")

	// Validation errors
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "invalid input")
	ErrPasswordMismatch = NewDomainError("PASSWORD_MISMATCH", "new password and confirmation do not match")

	// System errors
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error")
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "service unavailable")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT", "PASSWORD_MISMATCH", "INCORRECT_PASSWORD",
		"INACTIVE_ACCOUNT", "EMAIL_EXISTS", "USERNAME_EXISTS",
		"CATEGORY_EXISTS", "SELF_DEACTIVATION":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "INVALID_TOKEN", "BAD_CREDENTIALS":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "FORBIDDEN":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND", "QUESTION_NOT_FOUND", "CATEGORY_NOT_FOUND",
		"RESPONSE_NOT_FOUND":
		return http.StatusNotFound

	// 503 Service Unavailable
	case "SERVICE_UNAVAILABLE":
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
