package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the structured error body the auth service returns for any
// non-2xx response:
//
//	{timestamp, status, error, message, errors?: {field: message}}
//
// The Errors map is present on validation failures only.
type Error struct {
	Timestamp string            `json:"timestamp"`
	Status    int               `json:"status"`
	ErrorText string            `json:"error"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.ErrorText)
}

// Field returns the validation message attached to the named field, if any.
func (e *Error) Field(name string) (string, bool) {
	msg, ok := e.Errors[name]
	return msg, ok
}

// HasFieldErrors reports whether the failure carries per-field messages.
func (e *Error) HasFieldErrors() bool {
	return len(e.Errors) > 0
}

// Unauthorized reports whether the server rejected the caller's credentials
// or permissions.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// AsError unwraps err into *Error when the failure carries a structured
// server response.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
