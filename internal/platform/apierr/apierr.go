package apierr

import (
	"errors"
	"fmt"
	"net/http"

	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError maps a service error onto an HTTP status and error code.
// Store failures are reported without the driver message.
func FromError(err error) *Error {
	var ae *Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ae):
		return ae
	case errors.Is(err, apperr.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, apperr.ErrUnauthorized):
		return New(http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, apperr.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperr.ErrConflict):
		return New(http.StatusConflict, "conflict", err)
	case errors.Is(err, apperr.ErrInvalidState):
		return New(http.StatusConflict, "invalid_state", err)
	case errors.Is(err, apperr.ErrStore):
		return New(http.StatusServiceUnavailable, "store_unavailable", errors.New("graph store unavailable"))
	default:
		return New(http.StatusInternalServerError, "internal", errors.New("internal error"))
	}
}
