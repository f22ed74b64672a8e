package client

import (
	"errors"
	"fmt"
)

// ErrUnsuccessful marks any response the API reported as failed, whether by
// HTTP status or by a success:false body.
var ErrUnsuccessful = errors.New("api reported failure")

type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrUnsuccessful
}
