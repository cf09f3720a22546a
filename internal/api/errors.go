package api

import (
	"errors"
	"fmt"
)

// Every failure of the request client is converted to one of the errors
// below before it reaches a caller. Match sentinels with errors.Is and the
// typed errors with errors.As.
var (
	ErrInvalidURL    = errors.New("invalid url")
	ErrEmptyResponse = errors.New("empty response")
	ErrDecoding      = errors.New("response decoding failed")
)

// ServerError reports a response with a status code outside [200,299].
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: status %d", e.StatusCode)
}

// UnknownError wraps a transport-level failure (connection refused,
// timeout, malformed response) that has no more specific classification.
type UnknownError struct {
	Cause error
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown error: %v", e.Cause)
}

func (e *UnknownError) Unwrap() error {
	return e.Cause
}
