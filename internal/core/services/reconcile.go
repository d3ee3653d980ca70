package services

import (
	"time"

	"github.com/okarpov/carshare/internal/core/domain"
)

// ReconcileCarStatus re-derives a car's cached status from its bookings as of
// the given day. The status column is a projection of the ledger and can lag
// reality; this is the single place the projection is recomputed.
//
// Rules: a booking spanning asOf means the car is out with a renter; only
// future bookings left means the current status stands (a reservation is not
// a rental yet); nothing active means the car is free. Cars parked as
// UNAVAILABLE are maintenance-held by an operator and are never touched.
func ReconcileCarStatus(car *domain.Car, bookings []domain.Booking, asOf time.Time) domain.CarStatus {
	if car.Status == domain.CarUnavailable {
		return domain.CarUnavailable
	}

	day := domain.Day(asOf)
	hasFuture := false
	for i := range bookings {
		b := &bookings[i]
		if !b.IsActive() {
			continue
		}
		if b.Range().Contains(day) {
			return domain.CarRented
		}
		if b.StartDate.After(day) {
			hasFuture = true
		}
	}

	if hasFuture {
		return car.Status
	}
	return domain.CarAvailable
}
