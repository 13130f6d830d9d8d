package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStatus is returned for a status value outside the recognized
	// order lifecycle set.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidAction is returned for an unrecognized moderation action.
	ErrInvalidAction = errors.New("invalid moderation action")
)

// ValidationError reports a missing or malformed user-supplied field. It is
// recovered at the request boundary and shown back to the submitter.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func required(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "must not be blank"}
	}
	return nil
}
