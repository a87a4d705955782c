package cameras

import (
	"errors"
	"fmt"
)

var (
	ErrUpstreamUnavailable      = errors.New("camera API unavailable")
	ErrMalformedUpstreamPayload = errors.New("malformed camera API payload")
)

// StatusError is returned when the camera API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %s", ErrUpstreamUnavailable, e.Status)
	}
	return fmt.Sprintf("%s: %s: %s", ErrUpstreamUnavailable, e.Status, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}
