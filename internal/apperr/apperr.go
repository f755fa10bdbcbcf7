// Package apperr defines the error kinds shared by every component and how
// they map onto HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Match with errors.Is.
var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrPersistence         = errors.New("persistence error")
	ErrNoDataAvailable     = errors.New("no data available")
	ErrInvalidQuery        = errors.New("invalid query")
	ErrConfiguration       = errors.New("configuration error")
	ErrAuthentication      = errors.New("authentication error")
)

// Error carries a kind, a message that is safe to show to clients and the
// underlying cause, which is only ever logged.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Upstream(message string, err error) error {
	return newError(ErrUpstreamUnavailable, message, err)
}

func Persistence(message string, err error) error {
	return newError(ErrPersistence, message, err)
}

func NoData(message string) error {
	return newError(ErrNoDataAvailable, message, nil)
}

func InvalidQuery(message string) error {
	return newError(ErrInvalidQuery, message, nil)
}

// InvalidQueryCause is InvalidQuery keeping the parse error for the logs
func InvalidQueryCause(message string, err error) error {
	return newError(ErrInvalidQuery, message, err)
}

func Configuration(message string, err error) error {
	return newError(ErrConfiguration, message, err)
}

func Authentication(message string) error {
	return newError(ErrAuthentication, message, nil)
}

// StatusCode returns the HTTP status for err: 4xx for caller mistakes, 5xx for
// everything else including unclassified errors.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthentication):
		return http.StatusForbidden
	case errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, ErrNoDataAvailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the client-safe message for err. Unclassified errors
// never leak their text.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	switch {
	case errors.Is(err, ErrUpstreamUnavailable):
		return "Upstream service unavailable"
	case errors.Is(err, ErrPersistence):
		return "Storage error"
	case errors.Is(err, ErrNoDataAvailable):
		return "No location data found"
	case errors.Is(err, ErrInvalidQuery):
		return "Invalid request"
	case errors.Is(err, ErrConfiguration):
		return "Service misconfigured"
	case errors.Is(err, ErrAuthentication):
		return "Invalid API key"
	default:
		return "Internal server error"
	}
}

// Kind returns a short label for the kind of err, used in logs.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, ErrPersistence):
		return "persistence"
	case errors.Is(err, ErrNoDataAvailable):
		return "no_data_available"
	case errors.Is(err, ErrInvalidQuery):
		return "invalid_query"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrAuthentication):
		return "authentication"
	default:
		return "internal"
	}
}
