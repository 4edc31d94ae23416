// Package apperr defines the error kinds shared by every domain package.
//
// Domain packages declare their own sentinels with New, so callers can match
// either the precise error (operation.ErrNotFound) or its kind (apperr.ErrNotFound).
package apperr

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotDeletable       = errors.New("not deletable")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("validation failed")
)

// Error is a domain error with a stable machine-readable code and a message
// that is safe to show to clients.
type Error struct {
	Kind    error
	Code    string
	Message string
}

func New(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// ValidationError collects per-field messages.
type ValidationError struct {
	Fields map[string]string
}

// Invalid returns a ValidationError holding a single field message.
func Invalid(field, format string, args ...any) *ValidationError {
	v := &ValidationError{}
	v.Add(field, format, args...)
	return v
}

// Add records a message for field. The first message for a field wins.
func (v *ValidationError) Add(field, format string, args ...any) {
	if v.Fields == nil {
		v.Fields = make(map[string]string)
	}
	if _, ok := v.Fields[field]; ok {
		return
	}
	v.Fields[field] = fmt.Sprintf(format, args...)
}

// Err returns v as an error, or nil when no field failed.
func (v *ValidationError) Err() error {
	if v == nil || len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.Fields))
	for _, field := range slices.Sorted(maps.Keys(v.Fields)) {
		parts = append(parts, field+": "+v.Fields[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationError) Unwrap() error { return ErrValidation }

// CheckLength records a message on field when value is shorter than min or
// longer than max runes.
func (v *ValidationError) CheckLength(field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	switch {
	case n < min:
		v.Add(field, "must be at least %d characters", min)
	case n > max:
		v.Add(field, "must be at most %d characters", max)
	}
}
