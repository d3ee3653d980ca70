package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/okarpov/carshare/internal/core/domain"
	"github.com/okarpov/carshare/internal/core/ports"
)

// checkAvailability decides whether a reservation request is admissible.
// The validation order is part of the contract: user existence, user
// activity, user-level overlap, car existence, car-level overlap, then the
// date range itself. The first failure wins.
//
// Car-level overlap is always answered by the ledger, not by the car's
// cached status flag: the flag is a projection that can lag (see
// ReconcileCarStatus), the ledger is the source of truth.
func (s *BookingService) checkAvailability(ctx context.Context, tx ports.Tx, userID, carID uuid.UUID, r domain.DateRange) (*domain.Car, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, domain.ErrInactiveUser
	}

	userConflicts, err := s.bookingRepo.FindOverlappingByUser(ctx, tx, userID, r.Start, r.End, domain.ActiveStatuses)
	if err != nil {
		return nil, err
	}
	for i := range userConflicts {
		if userConflicts[i].Status == domain.BookingPending {
			return nil, domain.ErrUserPendingConflict
		}
	}
	if len(userConflicts) > 0 {
		return nil, domain.ErrUserConfirmedConflict
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	carConflicts, err := s.bookingRepo.FindOverlappingByCar(ctx, tx, carID, r.Start, r.End, domain.ActiveStatuses)
	if err != nil {
		return nil, err
	}
	if len(carConflicts) > 0 {
		return nil, domain.ErrCarDoubleBooked
	}

	if err := r.Validate(time.Now()); err != nil {
		return nil, err
	}

	return car, nil
}

// CheckAvailability is the standalone admissibility probe exposed to
// callers that want a dry run without creating anything.
func (s *BookingService) CheckAvailability(ctx context.Context, userID, carID uuid.UUID, start, end time.Time) error {
	_, err := s.checkAvailability(ctx, nil, userID, carID, domain.NewDateRange(start, end))
	return err
}
