package service

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrValidation         = errors.New("validation_failed")
	ErrDuplicateHandle    = errors.New("user_already_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNotFound           = errors.New("not_found")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError lists every field that failed, keyed by field name. It
// matches ErrValidation under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	for _, k := range slices.Sorted(maps.Keys(e.Fields)) {
		b.WriteString("; ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Fields[k])
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// add records a problem with field, keeping the first message per field.
func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// err returns nil when nothing was added, so callers can do `return v.err()`.
func (e *ValidationError) err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
