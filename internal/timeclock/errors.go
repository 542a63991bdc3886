package timeclock

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyClockedIn is returned when a clock-in is attempted while an
	// active entry exists for the staff member.
	ErrAlreadyClockedIn = errors.New("staff member already has an active entry")

	// ErrNoActiveEntry is returned when a clock-out finds no open entry.
	ErrNoActiveEntry = errors.New("no active entry for staff member")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StoreError wraps a persistence failure. Callers may retry with backoff.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
