package services

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrPresetIncomplete = errors.New("preset is missing component selections")
	ErrIncompatible     = errors.New("preset has compatibility warnings")
)

// ValidationError reports a rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
