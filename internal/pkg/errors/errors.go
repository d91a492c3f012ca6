package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState marks an operation applied to an entity in the wrong lifecycle state.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict marks an operation that would break a uniqueness rule.
	ErrConflict = errors.New("conflict")
	// ErrStore matches any StoreError.
	ErrStore = errors.New("store failure")
)

// StoreError wraps a failure reported by the graph store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e == nil {
		return ""
	}
	if e.Op == "" {
		return fmt.Sprintf("store: %v", e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

// Store wraps err as a StoreError unless it already carries a domain sentinel.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsDomain reports whether err carries one of the domain sentinels above.
func IsDomain(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrUnauthorized)
}

func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

func InvalidState(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidState)
}

func Conflict(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}
