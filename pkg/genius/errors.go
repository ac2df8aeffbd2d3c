package genius

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents an error response from Genius.
//
// Status is the HTTP status code (or the status reported in the response
// envelope), Message the server-provided description.
type Error struct {
	Status  int    // HTTP status code
	Message string // Error message from Genius
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("genius: status %d: %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("genius: status %d: %s", e.Status, e.Message)
}

// Is checks if the target error is a Genius error with the same status.
//
// This allows errors.Is() to work with *Error types.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status
}

// Temporary returns true if the request should be retried.
//
// Server errors (5xx) and 429 Too Many Requests are temporary. Every
// other 4xx is a hard failure.
func (e *Error) Temporary() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// NotFound reports whether the resource does not exist.
func (e *Error) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// Predefined errors for common cases.
var (
	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = errors.New("genius: invalid configuration")

	// ErrInvalidArgument is returned when a request parameter is out of range.
	ErrInvalidArgument = errors.New("genius: invalid argument")

	// ErrNoAccessToken is returned when an operation needs a bearer token.
	ErrNoAccessToken = errors.New("genius: access token required")
)

// IsNotFound reports whether err is a Genius 404.
func IsNotFound(err error) bool {
	var gErr *Error
	if errors.As(err, &gErr) {
		return gErr.NotFound()
	}
	return false
}

// isRetryableError determines if an error should trigger a retry.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var gErr *Error
	if errors.As(err, &gErr) {
		return gErr.Temporary()
	}

	// Network errors are handled by the transport directly.
	return false
}
