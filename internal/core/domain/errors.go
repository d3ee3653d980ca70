package domain

import (
	"errors"
	"fmt"
)

// Validation outcomes the boundary layer translates into user-facing
// responses. None of these are fatal.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrCarNotFound     = errors.New("car not found")
	ErrBookingNotFound = errors.New("booking not found")

	ErrInactiveUser = errors.New("user profile is not active")

	// User already has an overlapping booking. The two variants carry
	// distinct codes so callers can word the rejection differently.
	ErrUserPendingConflict   = errors.New("user has a pending booking for these dates")
	ErrUserConfirmedConflict = errors.New("user has a confirmed booking for these dates")

	ErrCarDoubleBooked = errors.New("car is already booked for these dates")

	ErrAlreadyConfirmed = errors.New("booking is already confirmed")
	ErrBookingCancelled = errors.New("booking has been cancelled")
	ErrNoBookings       = errors.New("user has no bookings")
	ErrCarHasBookings   = errors.New("car has active bookings")
)

// InvalidRangeError rejects a date range with a reason.
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return "invalid date range: " + e.Reason
}

func IsInvalidRange(err error) bool {
	var ire *InvalidRangeError
	return errors.As(err, &ire)
}

// StoreError marks an infrastructure failure. It is never a validation
// outcome and maps to a 5xx at the boundary.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
