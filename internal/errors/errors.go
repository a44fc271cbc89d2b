package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// Deliberately generic so login failures never reveal which field was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUsernameTaken is returned when registering with an existing username.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrEmailTaken is returned when registering with an existing email.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrContactNotFound is returned when a contact does not exist.
	ErrContactNotFound = errors.New("contact not found")
	// ErrForbidden is returned when a user acts on a contact they do not own.
	ErrForbidden = errors.New("forbidden")
	// ErrTokenInvalid is returned when a reset token is malformed, tampered
	// with, expired, or points at a user that no longer exists.
	ErrTokenInvalid = errors.New("invalid or expired token")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrContactNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CONTACT_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrTokenInvalid):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TOKEN_INVALID")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
