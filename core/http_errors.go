package core

import (
	"errors"
	"net/http"
)

// HTTPError represents an HTTP error with status code and message key.
// The Key is what clients see; the wrapped cause is only logged.
type HTTPError struct {
	Code  int    // HTTP status code
	Key   string // Message key (e.g., "not_found", "malformed_identifier")
	cause error
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.cause != nil {
		return e.Key + ": " + e.cause.Error()
	}
	return e.Key
}

// Unwrap returns the underlying cause, if any.
func (e HTTPError) Unwrap() error {
	return e.cause
}

// Is matches HTTP errors by status code and key, ignoring the cause.
func (e HTTPError) Is(target error) bool {
	var t HTTPError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Key == t.Key
}

// Wrap returns a copy of e carrying cause.
//
// Example:
//
//	return core.ErrMalformedIdentifier.Wrap(err)
func (e HTTPError) Wrap(cause error) HTTPError {
	e.cause = cause
	return e
}

// 4xx Client Errors
var (
	ErrBadRequest           = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrMalformedIdentifier  = HTTPError{Code: http.StatusBadRequest, Key: "malformed_identifier"}
	ErrNotFound             = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrMethodNotAllowed     = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
	ErrRequestTimeout       = HTTPError{Code: http.StatusRequestTimeout, Key: "request_timeout"}
	ErrUnsupportedMediaType = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type"}
	ErrUnprocessableEntity  = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable_entity"}
)

// 5xx Server Errors
var (
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrServiceUnavailable  = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
)

// NewHTTPError creates a custom HTTP error with the given status code and key.
//
// Example:
//
//	err := core.NewHTTPError(http.StatusConflict, "entry_exists")
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}
