package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation        = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTimeSlot   = errors.New("invalid time slot")
	ErrCapacityExceeded  = errors.New("insufficient capacity")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrStoreFailure      = errors.New("row store failure")
)

// ValidationError reports bad caller input. It matches ErrValidation, and Cause when set.
type ValidationError struct {
	Fields []string
	Msg    string
	Cause  error
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValidation, e.Cause}
	}
	return []error{ErrValidation}
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func missingFields(fields ...string) error {
	return &ValidationError{
		Fields: fields,
		Msg:    "missing required field(s): " + strings.Join(fields, ", "),
	}
}

func invalidTimeSlot(slot string) error {
	return &ValidationError{
		Fields: []string{"time_slot"},
		Msg:    fmt.Sprintf("%s: %q", ErrInvalidTimeSlot, slot),
		Cause:  ErrInvalidTimeSlot,
	}
}

// CapacityError is returned when a booking does not fit the remaining slot capacity.
type CapacityError struct {
	Slot      string
	Remaining int
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s for %s: remaining %d, requested %d", ErrCapacityExceeded, e.Slot, e.Remaining, e.Requested)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

// storeFailure wraps an error raised by the row store with the failed operation.
func storeFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreFailure, err)
}
