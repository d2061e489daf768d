package application

import (
	"errors"
	"fmt"

	"github.com/oksasatya/todo-api/internal/domain/repository"
)

var (
	ErrInvalidCredential = errors.New("could not validate credentials")
	ErrConflict          = errors.New("conflict")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	// ErrNoAddress is the "no address yet" signal. It is informational, not a failure.
	ErrNoAddress = errors.New("no address yet")
)

// Error pairs a sentinel kind with a caller-facing message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// ValidationError reports a field that failed a domain rule before reaching storage.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// storageError lifts repository sentinels into application kinds.
func storageError(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return newError(ErrNotFound, notFoundMsg)
	case errors.Is(err, repository.ErrConflict):
		return newError(ErrConflict, conflictMsg)
	default:
		return err
	}
}
