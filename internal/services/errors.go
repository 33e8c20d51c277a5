package services

import (
	"errors"
	"fmt"
)

// ErrNotAuthorized is returned when a moderation call is made by a
// non-admin identity. The check lives here, not in the database layer.
var ErrNotAuthorized = errors.New("admin privileges required")

// ValidationError reports malformed input rejected before any database
// call is made. Operations that return it perform no writes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a single-entity fetch for a nonexistent id.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
