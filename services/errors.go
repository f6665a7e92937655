package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidSource   = errors.New("invalid source")
	ErrNothingToUpdate = errors.New("nothing to update")
)

// ValidationError is a request that can never succeed as sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
