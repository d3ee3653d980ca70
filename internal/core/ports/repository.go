package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/okarpov/carshare/internal/core/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type CarRepository interface {
	GetByID(ctx context.Context, carID uuid.UUID) (*domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)
	Create(ctx context.Context, car *domain.Car) error
	// Delete refuses with domain.ErrCarHasBookings when the car still has
	// pending or confirmed bookings.
	Delete(ctx context.Context, carID uuid.UUID) error
	UpdateStatus(ctx context.Context, tx Tx, carID uuid.UUID, status domain.CarStatus) error
}

type BookingRepository interface {
	Create(ctx context.Context, tx Tx, booking *domain.Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	// FindOverlappingByCar and FindOverlappingByUser return bookings in the
	// given statuses whose inclusive date range intersects [start, end].
	FindOverlappingByCar(ctx context.Context, tx Tx, carID uuid.UUID, start, end time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error)
	FindOverlappingByUser(ctx context.Context, tx Tx, userID uuid.UUID, start, end time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error)
	// FindActiveByCar returns the car's pending and confirmed bookings,
	// used to re-derive the car's status after a cancellation.
	FindActiveByCar(ctx context.Context, carID uuid.UUID) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) error
	Delete(ctx context.Context, bookingID uuid.UUID) error
}

// Tx is an opaque transaction handle passed through the repositories so a
// check-then-write sequence runs on one database transaction. A nil Tx means
// the call runs on the pool directly.
type Tx interface{}

// TxManager scopes a function to a single transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}
