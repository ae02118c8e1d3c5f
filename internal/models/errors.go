package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("unauthorized")
)

const genericRemoteMessage = "Something went wrong. Please try again."

// ValidationError is raised before any gateway call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PreconditionError means the entity is not in the lifecycle state the
// operation needs.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

func NewPreconditionError(message string) *PreconditionError {
	return &PreconditionError{Message: message}
}

// RemoteError wraps a failure returned by the database or the blob store.
type RemoteError struct {
	Op      string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.UserMessage())
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// UserMessage is what the caller shows in a notification.
func (e *RemoteError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return genericRemoteMessage
}

func NewRemoteError(op string, err error) *RemoteError {
	return &RemoteError{Op: op, Err: err}
}

// UserMessage returns the text to show for any error produced by the
// service layer.
func UserMessage(err error) string {
	var ve *ValidationError
	var pe *PreconditionError
	var re *RemoteError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &pe):
		return pe.Message
	case errors.As(err, &re):
		return re.UserMessage()
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrUnauthorized):
		return "You do not have access to this resource"
	default:
		return genericRemoteMessage
	}
}
