package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// APIError reports a non-2xx reply from the Solar System API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	switch e.StatusCode {
	case 401:
		return "authentication failed, check SOLAR_API_TOKEN"
	case 404:
		return "resource not found"
	case 429:
		return "rate limit exceeded, wait before retrying"
	default:
		return fmt.Sprintf("upstream request failed with status %d", e.StatusCode)
	}
}

// Describe maps any fetch failure to the single plain line shown to
// callers. No internal detail leaks past this point.
func Describe(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return "Error: " + apiErr.Error() + "."
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "Error: request timed out. Please try again."
	}
	return "Error: upstream request failed."
}

// StatusCode extracts the upstream status from err, defaulting to 502 so
// transport failures read as a bad gateway rather than a server bug.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 502
}
