package transport

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthorized is returned when the service answered 401. The navigator has
// already been told to go to the login flow by the time a caller sees it.
var ErrUnauthorized = errors.New("unauthorized")

// RequestFailedError is any non-2xx answer other than 401
type RequestFailedError struct {
	Status int
	Body   string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, strings.TrimSpace(e.Body))
}

// TransportError wraps a failure to reach the service at all
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsUnauthorized returns true if the error is ErrUnauthorized
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRequestFailed returns true if the error carries a non-2xx status
func IsRequestFailed(err error) bool {
	var e *RequestFailedError
	return errors.As(err, &e)
}

// IsTransport returns true if the service could not be reached
func IsTransport(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}
