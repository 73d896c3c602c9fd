package wpcom

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for API calls.
type ErrorCategory string

const (
	// ErrorTimeout indicates the API took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the API returned a body that could not be decoded
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates credential or permission issues
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorOutage indicates the API is unavailable
	ErrorOutage ErrorCategory = "outage"

	// ErrorNotFound indicates the requested route or record doesn't exist
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected failure
	ErrorInternal ErrorCategory = "internal"
)

// APIError wraps API failures with a normalized category.
type APIError struct {
	Category   ErrorCategory
	StatusCode int
	Code       string
	Message    string
	Underlying error
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Underlying != nil {
		return fmt.Sprintf("wpcom [%s]: %s: %v", e.Category, msg, e.Underlying)
	}
	return fmt.Sprintf("wpcom [%s]: %s", e.Category, msg)
}

func (e *APIError) Unwrap() error {
	return e.Underlying
}

func newAPIError(category ErrorCategory, status int, message string, underlying error) *APIError {
	return &APIError{
		Category:   category,
		StatusCode: status,
		Message:    message,
		Underlying: underlying,
	}
}

// CategoryOf extracts the category from err, defaulting to ErrorInternal.
func CategoryOf(err error) ErrorCategory {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Category
	}
	return ErrorInternal
}

// categoryForStatus maps a non-2xx HTTP status onto the taxonomy.
func categoryForStatus(status int) ErrorCategory {
	switch {
	case status == 401 || status == 403:
		return ErrorAuthentication
	case status == 404:
		return ErrorNotFound
	case status == 408 || status == 504:
		return ErrorTimeout
	case status == 429:
		return ErrorRateLimited
	case status >= 500:
		return ErrorOutage
	default:
		return ErrorInternal
	}
}
