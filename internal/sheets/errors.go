package sheets

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured  = errors.New("sheets: not configured")
	ErrRequestFailed  = errors.New("sheets: request failed")
	ErrParseFailure   = errors.New("sheets: unexpected response body")
	ErrMissingHeaders = errors.New("sheets: header row missing")
)

// RequestError is returned for non-2xx responses.
type RequestError struct {
	StatusCode int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("sheets: HTTP error status %d", e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return ErrRequestFailed
}
