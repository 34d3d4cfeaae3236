package openrouter

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx upstream response. Classification is done by
// status code, never by matching message text.
type APIError struct {
	StatusCode int
	Type       string // Provider-specific error type, when present
	Message    string
	Raw        []byte // Original response body
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("upstream returned %d (%s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuth reports whether err is an upstream authentication failure.
func IsAuth(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// IsRateLimit reports whether err is an upstream rate-limit rejection.
func IsRateLimit(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests
}
