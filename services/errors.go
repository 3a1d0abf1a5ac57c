package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conditions handlers need to distinguish.
var (
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("you must own the store to edit it")
	ErrInvalidResetToken  = errors.New("reset token invalid or expired")
	ErrUnknownEmail       = errors.New("no account with that email")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports a rejected input field. The request is not
// applied when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
