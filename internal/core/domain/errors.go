package domain

import (
	"errors"
	"fmt"
)

var ErrTodoNotFound = errors.New("todo not found")

// NotFound wraps ErrTodoNotFound with the id that was looked up.
func NotFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrTodoNotFound, id)
}

// StoreError is any failure reported by the persistence layer.
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError reports input rejected before any store call.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrTodoNotFound)
}

// HealthError is returned by a liveness check. Acquire reports that no
// connection could be checked out of the pool.
type HealthError struct {
	Acquire bool
	Err     error
}

func (e *HealthError) Error() string {
	if e.Acquire {
		return fmt.Sprintf("pool acquire error: %v", e.Err)
	}
	return fmt.Sprintf("database error: %v", e.Err)
}

func (e *HealthError) Unwrap() error {
	return e.Err
}
