package coinbase

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth means the commerce API key was rejected.
	ErrAuth = errors.New("coinbase: invalid API key")
	// ErrForbidden usually means the server IP is not whitelisted.
	ErrForbidden = errors.New("coinbase: access forbidden")
	// ErrTimeout means the outbound call exceeded its deadline; the
	// charge must be treated as not created/not resolved.
	ErrTimeout = errors.New("coinbase: request timed out")
	// ErrUnavailable means no response was received at all.
	ErrUnavailable = errors.New("coinbase: gateway unavailable")
)

// APIError carries any other non-2xx gateway response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("coinbase: gateway returned %d: %s", e.StatusCode, e.Body)
}
