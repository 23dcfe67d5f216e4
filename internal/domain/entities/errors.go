package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrPostNotFound = errors.New("post not found")
	ErrValidation   = errors.New("validation failed")
)

// Violation describes one rejected payload field
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in a payload, in field order.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError is returned when no post carries the requested id
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Post with id %s not found!", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrPostNotFound }

// StoreReadError is returned when the record store cannot be read or parsed.
type StoreReadError struct {
	Path string
	Err  error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("read record store %s: %v", e.Path, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }

// StoreWriteError is returned when the record store cannot be persisted.
type StoreWriteError struct {
	Path string
	Err  error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("write record store %s: %v", e.Path, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }
