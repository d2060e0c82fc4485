// Package apperr defines the error kinds shared across the API: validation
// failures keyed by field, missing authentication, and storage failures.
// Not-found conditions stay as sentinels in each feature's domain package.
package apperr

import (
	"errors"
	"fmt"
)

var ErrUnauthenticated = errors.New("not authenticated")

// ValidationError reports the first failing input field. Validation is
// fail-fast: one error per attempt, never an aggregate.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation unwraps err into a ValidationError, or nil.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// StorageError wraps a failed gateway call. It is surfaced to the caller
// verbatim and never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func Storage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
