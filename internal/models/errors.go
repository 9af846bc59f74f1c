package models

import (
	"errors"
	"fmt"
)

var (
	ErrApartmentNotFound = errors.New("apartment not found")
	ErrAttachmentMissing = errors.New("image is required")
	ErrInvalidToken      = errors.New("invalid token")
)

// ValidationError reports malformed or out-of-range input. It is always
// returned before any side effect takes place.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError wraps any failure of a backing dependency (database, object
// storage), including timeouts.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
