package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnavailable means the request never produced a backend response:
	// connection refused, timeout, DNS failure. Always retryable.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrNotFound matches backend rejections for a missing record.
	// Use errors.Is against a returned *BackendError.
	ErrNotFound = errors.New("not found")
)

// BackendError is a response the backend produced but rejected: either
// an envelope with success=false or a non-2xx status. Message carries the
// backend-provided text when present.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend rejected request (status %d)", e.Status)
}

// Is lets callers match "record does not exist" rejections with
// errors.Is(err, ErrNotFound) without inspecting status codes themselves.
func (e *BackendError) Is(target error) bool {
	if target != ErrNotFound {
		return false
	}
	return e.Status == http.StatusNotFound ||
		strings.Contains(strings.ToLower(e.Message), "not found")
}
