package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// ActiveStatuses are the statuses that occupy a car for overlap purposes.
// Cancelled bookings never block a date range.
var ActiveStatuses = []BookingStatus{BookingPending, BookingConfirmed}

type Booking struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	CarID          uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
	Status         BookingStatus
	TotalPrice     float64
	AdvancePayment float64
	CreatedAt      time.Time
	ConfirmedAt    *time.Time
	CancelledAt    *time.Time
}

func (b *Booking) IsActive() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

func (b *Booking) Range() DateRange {
	return DateRange{Start: b.StartDate, End: b.EndDate}
}

// UserBooking is the projection returned by the per-user listing.
type UserBooking struct {
	BookingID      uuid.UUID     `json:"booking_id"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        time.Time     `json:"end_date"`
	Status         BookingStatus `json:"status"`
	TotalPrice     float64       `json:"total_price"`
	AdvancePayment float64       `json:"advance_payment"`
	CarMake        string        `json:"car_make"`
	CarModel       string        `json:"car_model"`
}
