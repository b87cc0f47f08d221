package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrCapacityExhausted   = errors.New("no free seats available on this flight")
	ErrReferentialConflict = errors.New("referential conflict")
	ErrDuplicate           = errors.New("duplicate entry")
	ErrValidation          = errors.New("validation failed")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)

var (
	ErrFlightNotFound    = fmt.Errorf("flight %w", ErrNotFound)
	ErrTicketNotFound    = fmt.Errorf("ticket %w", ErrNotFound)
	ErrPlaneNotFound     = fmt.Errorf("plane %w", ErrNotFound)
	ErrFlightHasTickets  = &kindError{msg: "cannot delete flight: it has sold tickets", kind: ErrReferentialConflict}
	ErrPlaneInUse        = &kindError{msg: "cannot delete plane: it is used in existing flights", kind: ErrReferentialConflict}
	ErrFlightNumberTaken = &kindError{msg: "flight number already exists", kind: ErrDuplicate}
)

// kindError carries its own message and matches its kind via errors.Is.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// ValidationError keeps the caller-facing message while matching ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsConflict(err error) bool {
	return errors.Is(err, ErrCapacityExhausted) ||
		errors.Is(err, ErrReferentialConflict) ||
		errors.Is(err, ErrDuplicate)
}
