package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable wraps transport failures: the server could not be reached
	// or did not answer before the deadline.
	ErrUnavailable = errors.New("server unavailable")

	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrInvalidResponse   = errors.New("invalid server response")
	ErrUnsupportedMethod = errors.New("unsupported method")

	errMissingTokens = errors.New("token pair missing in refresh answer")
)

// APIError is returned for every non-2xx answer and for 2xx answers whose
// body cannot be decoded. Message is what the user should see.
type APIError struct {
	Message string
	Status  int
	Err     error
}

func newAPIError(status int, message string) *APIError {
	return &APIError{Message: message, Status: status}
}

func invalidResponse(status int, cause error) *APIError {
	return &APIError{
		Message: ErrInvalidResponse.Error(),
		Status:  status,
		Err:     fmt.Errorf("%w: %v", ErrInvalidResponse, cause),
	}
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is lets callers match on the HTTP status class with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
