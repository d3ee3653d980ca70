package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/okarpov/carshare/internal/core/domain"
	"github.com/okarpov/carshare/internal/core/services"
)

func TestReconcileCarStatus(t *testing.T) {
	asOf := time.Date(2026, 6, 10, 14, 30, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return time.Date(2026, 6, 10+offset, 0, 0, 0, 0, time.UTC)
	}
	booking := func(status domain.BookingStatus, startOffset, endOffset int) domain.Booking {
		return domain.Booking{
			ID:        uuid.New(),
			Status:    status,
			StartDate: day(startOffset),
			EndDate:   day(endOffset),
		}
	}

	tests := []struct {
		name     string
		current  domain.CarStatus
		bookings []domain.Booking
		want     domain.CarStatus
	}{
		{
			name:     "booking ended, car freed",
			current:  domain.CarRented,
			bookings: []domain.Booking{booking(domain.BookingConfirmed, -5, -1)},
			want:     domain.CarAvailable,
		},
		{
			name:     "booking spans today, car rented",
			current:  domain.CarReserved,
			bookings: []domain.Booking{booking(domain.BookingConfirmed, -1, 2)},
			want:     domain.CarRented,
		},
		{
			name:     "pending booking spanning today also counts",
			current:  domain.CarReserved,
			bookings: []domain.Booking{booking(domain.BookingPending, 0, 3)},
			want:     domain.CarRented,
		},
		{
			name:     "future booking leaves status unchanged",
			current:  domain.CarReserved,
			bookings: []domain.Booking{booking(domain.BookingPending, 2, 5)},
			want:     domain.CarReserved,
		},
		{
			name:     "no bookings frees the car",
			current:  domain.CarReserved,
			bookings: nil,
			want:     domain.CarAvailable,
		},
		{
			name:     "cancelled bookings are ignored",
			current:  domain.CarReserved,
			bookings: []domain.Booking{booking(domain.BookingCancelled, -1, 2)},
			want:     domain.CarAvailable,
		},
		{
			name:     "past and future mix keeps status",
			current:  domain.CarReserved,
			bookings: []domain.Booking{booking(domain.BookingConfirmed, -5, -2), booking(domain.BookingPending, 3, 6)},
			want:     domain.CarReserved,
		},
		{
			name:     "maintenance hold is never overridden",
			current:  domain.CarUnavailable,
			bookings: []domain.Booking{booking(domain.BookingConfirmed, -1, 2)},
			want:     domain.CarUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			car := &domain.Car{ID: uuid.New(), Status: tt.current}
			assert.Equal(t, tt.want, services.ReconcileCarStatus(car, tt.bookings, asOf))
		})
	}
}
