package api

import (
	"errors"
	"fmt"
)

// ErrBackendUnavailable marks transport-level failures (connection refused,
// DNS, timeout before any response). Callers match it with errors.Is and
// degrade to an empty state instead of failing outright.
var ErrBackendUnavailable = errors.New("backend unavailable")

// APIError is a non-2xx response from the backend. Detail carries the
// backend-supplied message when the body had one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// ServerError reports whether the failure was on the backend's side.
func (e *APIError) ServerError() bool {
	return e.Status >= 500
}

// Message returns the user-facing message: backend detail when present,
// otherwise a generic fallback.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.ServerError() {
		return "the contract service hit an internal error, please try again"
	}
	return fmt.Sprintf("request rejected with status %d", e.Status)
}

// Unavailable reports whether err represents an unreachable backend.
func Unavailable(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}
