package apperrors

import (
	"errors"
	"fmt"
)

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConfiguration indicates that required process configuration is missing or blank.
var ErrConfiguration = errors.New("configuration error")

// ErrUpstream indicates that the upstream rate provider answered with a non-success status.
var ErrUpstream = errors.New("upstream error")

// ErrFetchFailed marks a historical date that could not be fetched after all retries.
var ErrFetchFailed = errors.New("fetch_failed")

// UpstreamError carries the status code and as much of the response body as could be read.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("OXR %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets callers match any upstream failure with errors.Is(err, ErrUpstream).
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}
