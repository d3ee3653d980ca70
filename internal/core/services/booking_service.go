package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/okarpov/carshare/internal/core/domain"
	"github.com/okarpov/carshare/internal/core/ports"
)

// BookingService implements the booking lifecycle: admissibility, pricing,
// state transitions and the lazy status reconciliation run on reads.
type BookingService struct {
	userRepo    ports.UserRepository
	carRepo     ports.CarRepository
	bookingRepo ports.BookingRepository
	txm         ports.TxManager
	locker      ports.CarLocker
	notifier    ports.Notifier
	cache       *redis.Client
	log         *logrus.Logger
}

func NewBookingService(
	userRepo ports.UserRepository,
	carRepo ports.CarRepository,
	bookingRepo ports.BookingRepository,
	txm ports.TxManager,
	locker ports.CarLocker,
	notifier ports.Notifier,
	cache *redis.Client,
	log *logrus.Logger,
) *BookingService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &BookingService{
		userRepo:    userRepo,
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
		txm:         txm,
		locker:      locker,
		notifier:    notifier,
		cache:       cache,
		log:         log,
	}
}

func carCacheKey(carID uuid.UUID) string {
	return fmt.Sprintf("car:%s", carID)
}

func (s *BookingService) invalidateCar(ctx context.Context, carID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, carCacheKey(carID)).Err(); err != nil {
		s.log.WithError(err).WithField("car_id", carID).Warn("failed to invalidate car cache")
	}
}

// Create reserves a car for a user over a date range. The admissibility
// check and the two writes (insert booking, flip car to RESERVED) run under
// a per-car lock and a single database transaction, so two racing requests
// for overlapping ranges cannot both pass the overlap check.
func (s *BookingService) Create(ctx context.Context, userID, carID uuid.UUID, start, end time.Time) (*domain.Booking, error) {
	rng := domain.NewDateRange(start, end)

	release, err := s.locker.Acquire(ctx, carID)
	if err != nil {
		return nil, domain.NewStoreError("acquire car lock", err)
	}
	defer release()

	var booking *domain.Booking
	err = s.txm.WithinTx(ctx, func(tx ports.Tx) error {
		car, err := s.checkAvailability(ctx, tx, userID, carID, rng)
		if err != nil {
			return err
		}

		total, advance, err := domain.ComputePrice(car.DailyRate, rng)
		if err != nil {
			return err
		}

		b := &domain.Booking{
			ID:             uuid.New(),
			UserID:         userID,
			CarID:          carID,
			StartDate:      rng.Start,
			EndDate:        rng.End,
			Status:         domain.BookingPending,
			TotalPrice:     total,
			AdvancePayment: advance,
			CreatedAt:      time.Now(),
		}
		if err := s.bookingRepo.Create(ctx, tx, b); err != nil {
			return err
		}
		if err := s.carRepo.UpdateStatus(ctx, tx, carID, domain.CarReserved); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCar(ctx, carID)
	s.notifier.Notify(fmt.Sprintf("Booking created. Total price: %.2f, advance payment: %.2f.", booking.TotalPrice, booking.AdvancePayment))
	return booking, nil
}

// MarkCompleted confirms a pending booking. The transition is one-way:
// confirming twice is rejected, as is confirming a cancelled booking.
func (s *BookingService) MarkCompleted(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	switch booking.Status {
	case domain.BookingConfirmed:
		return nil, domain.ErrAlreadyConfirmed
	case domain.BookingCancelled:
		return nil, domain.ErrBookingCancelled
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingConfirmed); err != nil {
		return nil, err
	}
	booking.Status = domain.BookingConfirmed
	now := time.Now()
	booking.ConfirmedAt = &now

	s.notifier.Notify("Booking confirmed. Thank you for using our service!")
	return booking, nil
}

// Cancel marks a booking CANCELLED and re-derives the car's status from the
// remaining ledger. The row is kept for auditability; Delete removes it.
func (s *BookingService) Cancel(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status == domain.BookingCancelled {
		return domain.ErrBookingCancelled
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingCancelled); err != nil {
		return err
	}
	// The cancellation is already persisted; a failed release must not make
	// the caller retry it. The next read-path reconcile will catch up.
	if err := s.releaseCar(ctx, booking.CarID); err != nil {
		s.log.WithError(err).WithField("car_id", booking.CarID).Warn("failed to release car after cancellation")
	}

	s.notifier.Notify("Your booking has been cancelled.")
	return nil
}

// Delete removes a booking row entirely and re-derives the car's status.
// Permitted from any state; used by the administrative cleanup path.
func (s *BookingService) Delete(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	wasActive := booking.IsActive()

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		return err
	}
	if wasActive {
		if err := s.releaseCar(ctx, booking.CarID); err != nil {
			s.log.WithError(err).WithField("car_id", booking.CarID).Warn("failed to release car after deletion")
		}
	}

	s.notifier.Notify("Your booking has been deleted.")
	return nil
}

// releaseCar recomputes a car's status from its remaining active bookings.
// The car only goes back to AVAILABLE when nothing else holds it.
func (s *BookingService) releaseCar(ctx context.Context, carID uuid.UUID) error {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return err
	}
	active, err := s.bookingRepo.FindActiveByCar(ctx, carID)
	if err != nil {
		return err
	}

	status := ReconcileCarStatus(car, active, time.Now())
	if status == car.Status {
		return nil
	}
	if err := s.carRepo.UpdateStatus(ctx, nil, carID, status); err != nil {
		return err
	}
	s.invalidateCar(ctx, carID)
	return nil
}

// ListAll returns every booking. No side effects.
func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.bookingRepo.ListAll(ctx)
}

// ListForUser returns the user's bookings as projections. Listing doubles as
// the lazy reconciliation pass: each referenced car's status is re-derived
// from today against the booking's range, and stale flags are rewritten.
// Those writes are best effort; a failed car update is logged and the
// listing proceeds.
func (s *BookingService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.UserBooking, error) {
	bookings, err := s.bookingRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, domain.ErrNoBookings
	}

	today := time.Now()
	out := make([]domain.UserBooking, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]

		dto := domain.UserBooking{
			BookingID:      b.ID,
			StartDate:      b.StartDate,
			EndDate:        b.EndDate,
			Status:         b.Status,
			TotalPrice:     b.TotalPrice,
			AdvancePayment: b.AdvancePayment,
		}

		car, err := s.carRepo.GetByID(ctx, b.CarID)
		if err != nil {
			s.log.WithError(err).WithField("car_id", b.CarID).Warn("skipping car reconciliation")
			out = append(out, dto)
			continue
		}
		dto.CarMake = car.Make
		dto.CarModel = car.Model

		// A cancelled row no longer holds the car. The car may be held by
		// somebody else's booking, so reconcile against its full active
		// ledger, not just this row.
		if b.IsActive() {
			active, err := s.bookingRepo.FindActiveByCar(ctx, car.ID)
			if err != nil {
				s.log.WithError(err).WithField("car_id", car.ID).Warn("skipping car reconciliation")
				out = append(out, dto)
				continue
			}
			if status := ReconcileCarStatus(car, active, today); status != car.Status {
				if err := s.carRepo.UpdateStatus(ctx, nil, car.ID, status); err != nil {
					s.log.WithError(err).WithFields(logrus.Fields{
						"car_id": car.ID,
						"status": status,
					}).Warn("failed to update stale car status")
				} else {
					s.invalidateCar(ctx, car.ID)
				}
			}
		}

		out = append(out, dto)
	}
	return out, nil
}
