package services_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/okarpov/carshare/internal/core/domain"
	"github.com/okarpov/carshare/internal/core/ports"
	"github.com/okarpov/carshare/internal/core/ports/mocks"
	"github.com/okarpov/carshare/internal/core/services"
)

type serviceFixture struct {
	userRepo    *mocks.UserRepository
	carRepo     *mocks.CarRepository
	bookingRepo *mocks.BookingRepository
	txm         *mocks.TxManager
	locker      *mocks.CarLocker
	notifier    *mocks.Notifier
	redis       redismock.ClientMock
	svc         *services.BookingService
}

func newFixture(t *testing.T) *serviceFixture {
	f := &serviceFixture{
		userRepo:    mocks.NewUserRepository(t),
		carRepo:     mocks.NewCarRepository(t),
		bookingRepo: mocks.NewBookingRepository(t),
		txm:         mocks.NewTxManager(t),
		locker:      mocks.NewCarLocker(t),
		notifier:    mocks.NewNotifier(t),
	}

	db, redisMock := redismock.NewClientMock()
	f.redis = redisMock

	log := logrus.New()
	log.SetOutput(io.Discard)

	f.svc = services.NewBookingService(f.userRepo, f.carRepo, f.bookingRepo, f.txm, f.locker, f.notifier, db, log)
	return f
}

// passthroughTx makes the mocked transaction manager run the callback with a
// nil transaction handle, so the repositories hit the mocks directly.
func (f *serviceFixture) passthroughTx() {
	f.txm.On("WithinTx", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(ports.Tx) error) error { return fn(nil) })
}

func (f *serviceFixture) grantLock(carID uuid.UUID) {
	f.locker.On("Acquire", mock.Anything, carID).Return(func() {}, nil)
}

func tomorrow() time.Time {
	return domain.Day(time.Now()).AddDate(0, 0, 1)
}

func activeUser(id uuid.UUID) *domain.User {
	return &domain.User{ID: id, Name: "Ivan", Status: domain.UserActive}
}

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	userID := uuid.New()
	carID := uuid.New()
	start := tomorrow()
	end := start.AddDate(0, 0, 3)

	car := &domain.Car{ID: carID, Make: "Lada", Model: "Vesta", DailyRate: 50, Status: domain.CarAvailable}

	f.grantLock(carID)
	f.passthroughTx()
	f.userRepo.On("GetByID", mock.Anything, userID).Return(activeUser(userID), nil)
	f.bookingRepo.On("FindOverlappingByUser", mock.Anything, mock.Anything, userID, start, end, domain.ActiveStatuses).Return(nil, nil)
	f.carRepo.On("GetByID", mock.Anything, carID).Return(car, nil)
	f.bookingRepo.On("FindOverlappingByCar", mock.Anything, mock.Anything, carID, start, end, domain.ActiveStatuses).Return(nil, nil)
	f.bookingRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.UserID == userID &&
			b.CarID == carID &&
			b.Status == domain.BookingPending &&
			b.TotalPrice == 150 &&
			b.AdvancePayment == 30
	})).Return(nil)
	f.carRepo.On("UpdateStatus", mock.Anything, mock.Anything, carID, domain.CarReserved).Return(nil)
	f.notifier.On("Notify", mock.AnythingOfType("string")).Return()
	f.redis.ExpectDel(fmt.Sprintf("car:%s", carID)).SetVal(1)

	booking, err := f.svc.Create(ctx, userID, carID, start, end)

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.Equal(t, domain.BookingPending, booking.Status)
		assert.Equal(t, 150.0, booking.TotalPrice)
		assert.Equal(t, 30.0, booking.AdvancePayment)
		assert.Equal(t, start, booking.StartDate)
		assert.Equal(t, end, booking.EndDate)
	}
	assert.NoError(t, f.redis.ExpectationsWereMet())
}

func TestCreateBooking_UserNotFound(t *testing.T) {
	f := newFixture(t)

	userID := uuid.New()
	carID := uuid.New()

	f.grantLock(carID)
	f.passthroughTx()
	f.userRepo.On("GetByID", mock.Anything, userID).Return(nil, domain.ErrUserNotFound)

	_, err := f.svc.Create(context.Background(), userID, carID, tomorrow(), tomorrow().AddDate(0, 0, 2))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreateBooking_InactiveUser(t *testing.T) {
	f := newFixture(t)

	userID := uuid.New()
	carID := uuid.New()

	f.grantLock(carID)
	f.passthroughTx()
	f.userRepo.On("GetByID", mock.Anything, userID).
		Return(&domain.User{ID: userID, Status: domain.UserBlocked}, nil)

	_, err := f.svc.Create(context.Background(), userID, carID, tomorrow(), tomorrow().AddDate(0, 0, 2))
	assert.ErrorIs(t, err, domain.ErrInactiveUser)
}

func TestCreateBooking_UserConflicts(t *testing.T) {
	tests := []struct {
		name     string
		conflict domain.BookingStatus
		wantErr  error
	}{
		{"pending conflict", domain.BookingPending, domain.ErrUserPendingConflict},
		{"confirmed conflict", domain.BookingConfirmed, domain.ErrUserConfirmedConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			userID := uuid.New()
			carID := uuid.New()

			f.grantLock(carID)
			f.passthroughTx()
			f.userRepo.On("GetByID", mock.Anything, userID).Return(activeUser(userID), nil)
			f.bookingRepo.On("FindOverlappingByUser", mock.Anything, mock.Anything, userID, mock.Anything, mock.Anything, domain.ActiveStatuses).
				Return([]domain.Booking{{ID: uuid.New(), Status: tt.conflict}}, nil)

			_, err := f.svc.Create(context.Background(), userID, carID, tomorrow(), tomorrow().AddDate(0, 0, 2))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateBooking_CarNotFound(t *testing.T) {
	f := newFixture(t)

	userID := uuid.New()
	carID := uuid.New()

	f.grantLock(carID)
	f.passthroughTx()
	f.userRepo.On("GetByID", mock.Anything, userID).Return(activeUser(userID), nil)
	f.bookingRepo.On("FindOverlappingByUser", mock.Anything, mock.Anything, userID, mock.Anything, mock.Anything, domain.ActiveStatuses).Return(nil, nil)
	f.carRepo.On("GetByID", mock.Anything, carID).Return(nil, domain.ErrCarNotFound)

	_, err := f.svc.Create(context.Background(), userID, carID, tomorrow(), tomorrow().AddDate(0, 0, 2))
	assert.ErrorIs(t, err, domain.ErrCarNotFound)
}

func TestCreateBooking_CarDoubleBooked(t *testing.T) {
	f := newFixture(t)

	userID := uuid.New()
	carID := uuid.New()

	f.grantLock(carID)
	f.passthroughTx()
	f.userRepo.On("GetByID", mock.Anything, userID).Return(activeUser(userID), nil)
	f.bookingRepo.On("FindOverlappingByUser", mock.Anything, mock.Anything, userID, mock.Anything, mock.Anything, domain.ActiveStatuses).Return(nil, nil)
	f.carRepo.On("GetByID", mock.Anything, carID).Return(&domain.Car{ID: carID, DailyRate: 50, Status: domain.CarAvailable}, nil)
	f.bookingRepo.On("FindOverlappingByCar", mock.Anything, mock.Anything, carID, mock.Anything, mock.Anything, domain.ActiveStatuses).
		Return([]domain.Booking{{ID: uuid.New(), Status: domain.BookingConfirmed}}, nil)

	_, err := f.svc.Create(context.Background(), userID, carID, tomorrow(), tomorrow().AddDate(0, 0, 2))
	assert.ErrorIs(t, err, domain.ErrCarDoubleBooked)
}

func TestCreateBooking_InvalidRange(t *testing.T) {
	yesterday := domain.Day(time.Now()).AddDate(0, 0, -1)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"start in the past", yesterday, tomorrow()},
		{"end before start", tomorrow().AddDate(0, 0, 5), tomorrow()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			userID := uuid.New()
			carID := uuid.New()

			f.grantLock(carID)
			f.passthroughTx()
			f.userRepo.On("GetByID", mock.Anything, userID).Return(activeUser(userID), nil)
			f.bookingRepo.On("FindOverlappingByUser", mock.Anything, mock.Anything, userID, mock.Anything, mock.Anything, domain.ActiveStatuses).Return(nil, nil)
			f.carRepo.On("GetByID", mock.Anything, carID).Return(&domain.Car{ID: carID, DailyRate: 50, Status: domain.CarAvailable}, nil)
			f.bookingRepo.On("FindOverlappingByCar", mock.Anything, mock.Anything, carID, mock.Anything, mock.Anything, domain.ActiveStatuses).Return(nil, nil)

			_, err := f.svc.Create(context.Background(), userID, carID, tt.start, tt.end)
			assert.True(t, domain.IsInvalidRange(err), "expected invalid range, got %v", err)
		})
	}
}

func TestCreateBooking_LockFailure(t *testing.T) {
	f := newFixture(t)

	carID := uuid.New()
	f.locker.On("Acquire", mock.Anything, carID).Return(nil, errors.New("redis down"))

	_, err := f.svc.Create(context.Background(), uuid.New(), carID, tomorrow(), tomorrow().AddDate(0, 0, 2))
	assert.True(t, domain.IsStoreError(err))
}

func TestMarkCompleted(t *testing.T) {
	t.Run("pending becomes confirmed", func(t *testing.T) {
		f := newFixture(t)
		bookingID := uuid.New()

		f.bookingRepo.On("GetByID", mock.Anything, bookingID).
			Return(&domain.Booking{ID: bookingID, Status: domain.BookingPending}, nil)
		f.bookingRepo.On("UpdateStatus", mock.Anything, bookingID, domain.BookingConfirmed).Return(nil)
		f.notifier.On("Notify", mock.AnythingOfType("string")).Return()

		booking, err := f.svc.MarkCompleted(context.Background(), bookingID)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, booking.Status)
		assert.NotNil(t, booking.ConfirmedAt)
	})

	t.Run("second confirm is rejected", func(t *testing.T) {
		f := newFixture(t)
		bookingID := uuid.New()

		f.bookingRepo.On("GetByID", mock.Anything, bookingID).
			Return(&domain.Booking{ID: bookingID, Status: domain.BookingConfirmed}, nil)

		_, err := f.svc.MarkCompleted(context.Background(), bookingID)
		assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)
	})

	t.Run("cancelled cannot be confirmed", func(t *testing.T) {
		f := newFixture(t)
		bookingID := uuid.New()

		f.bookingRepo.On("GetByID", mock.Anything, bookingID).
			Return(&domain.Booking{ID: bookingID, Status: domain.BookingCancelled}, nil)

		_, err := f.svc.MarkCompleted(context.Background(), bookingID)
		assert.ErrorIs(t, err, domain.ErrBookingCancelled)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)
		bookingID := uuid.New()

		f.bookingRepo.On("GetByID", mock.Anything, bookingID).Return(nil, domain.ErrBookingNotFound)

		_, err := f.svc.MarkCompleted(context.Background(), bookingID)
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})
}

func TestCancel_FreesCar(t *testing.T) {
	f := newFixture(t)

	bookingID := uuid.New()
	carID := uuid.New()

	f.bookingRepo.On("GetByID", mock.Anything, bookingID).
		Return(&domain.Booking{ID: bookingID, CarID: carID, Status: domain.BookingPending}, nil)
	f.bookingRepo.On("UpdateStatus", mock.Anything, bookingID, domain.BookingCancelled).Return(nil)
	f.carRepo.On("GetByID", mock.Anything, carID).
		Return(&domain.Car{ID: carID, Status: domain.CarReserved}, nil)
	f.bookingRepo.On("FindActiveByCar", mock.Anything, carID).Return(nil, nil)
	f.carRepo.On("UpdateStatus", mock.Anything, mock.Anything, carID, domain.CarAvailable).Return(nil)
	f.notifier.On("Notify", mock.AnythingOfType("string")).Return()
	f.redis.ExpectDel(fmt.Sprintf("car:%s", carID)).SetVal(1)

	err := f.svc.Cancel(context.Background(), bookingID)
	assert.NoError(t, err)
	assert.NoError(t, f.redis.ExpectationsWereMet())
}

func TestCancel_KeepsCarHeldByOtherBooking(t *testing.T) {
	f := newFixture(t)

	bookingID := uuid.New()
	carID := uuid.New()
	future := domain.Booking{
		ID:        uuid.New(),
		CarID:     carID,
		Status:    domain.BookingPending,
		StartDate: tomorrow().AddDate(0, 0, 5),
		EndDate:   tomorrow().AddDate(0, 0, 8),
	}

	f.bookingRepo.On("GetByID", mock.Anything, bookingID).
		Return(&domain.Booking{ID: bookingID, CarID: carID, Status: domain.BookingConfirmed}, nil)
	f.bookingRepo.On("UpdateStatus", mock.Anything, bookingID, domain.BookingCancelled).Return(nil)
	f.carRepo.On("GetByID", mock.Anything, carID).
		Return(&domain.Car{ID: carID, Status: domain.CarReserved}, nil)
	f.bookingRepo.On("FindActiveByCar", mock.Anything, carID).Return([]domain.Booking{future}, nil)
	f.notifier.On("Notify", mock.AnythingOfType("string")).Return()

	err := f.svc.Cancel(context.Background(), bookingID)
	assert.NoError(t, err)
	f.carRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, carID, mock.Anything)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	f := newFixture(t)
	bookingID := uuid.New()

	f.bookingRepo.On("GetByID", mock.Anything, bookingID).
		Return(&domain.Booking{ID: bookingID, Status: domain.BookingCancelled}, nil)

	err := f.svc.Cancel(context.Background(), bookingID)
	assert.ErrorIs(t, err, domain.ErrBookingCancelled)
}

func TestDelete_RemovesBookingAndReleasesCar(t *testing.T) {
	f := newFixture(t)

	bookingID := uuid.New()
	carID := uuid.New()

	f.bookingRepo.On("GetByID", mock.Anything, bookingID).
		Return(&domain.Booking{ID: bookingID, CarID: carID, Status: domain.BookingConfirmed}, nil)
	f.bookingRepo.On("Delete", mock.Anything, bookingID).Return(nil)
	f.carRepo.On("GetByID", mock.Anything, carID).
		Return(&domain.Car{ID: carID, Status: domain.CarRented}, nil)
	f.bookingRepo.On("FindActiveByCar", mock.Anything, carID).Return(nil, nil)
	f.carRepo.On("UpdateStatus", mock.Anything, mock.Anything, carID, domain.CarAvailable).Return(nil)
	f.notifier.On("Notify", mock.AnythingOfType("string")).Return()
	f.redis.ExpectDel(fmt.Sprintf("car:%s", carID)).SetVal(1)

	err := f.svc.Delete(context.Background(), bookingID)
	assert.NoError(t, err)
	assert.NoError(t, f.redis.ExpectationsWereMet())
}

func TestListForUser_NoBookings(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()

	f.bookingRepo.On("GetByUser", mock.Anything, userID).Return(nil, nil)

	_, err := f.svc.ListForUser(context.Background(), userID)
	assert.ErrorIs(t, err, domain.ErrNoBookings)
}

func TestListForUser_ReconcilesPastBookingToAvailable(t *testing.T) {
	f := newFixture(t)

	userID := uuid.New()
	carID := uuid.New()
	past := domain.Booking{
		ID:             uuid.New(),
		UserID:         userID,
		CarID:          carID,
		Status:         domain.BookingConfirmed,
		StartDate:      domain.Day(time.Now()).AddDate(0, 0, -10),
		EndDate:        domain.Day(time.Now()).AddDate(0, 0, -5),
		TotalPrice:     250,
		AdvancePayment: 50,
	}

	f.bookingRepo.On("GetByUser", mock.Anything, userID).Return([]domain.Booking{past}, nil)
	f.carRepo.On("GetByID", mock.Anything, carID).
		Return(&domain.Car{ID: carID, Make: "Kia", Model: "Rio", Status: domain.CarRented}, nil)
	f.bookingRepo.On("FindActiveByCar", mock.Anything, carID).Return([]domain.Booking{past}, nil)
	f.carRepo.On("UpdateStatus", mock.Anything, mock.Anything, carID, domain.CarAvailable).Return(nil)
	f.redis.ExpectDel(fmt.Sprintf("car:%s", carID)).SetVal(1)

	out, err := f.svc.ListForUser(context.Background(), userID)

	assert.NoError(t, err)
	if assert.Len(t, out, 1) {
		assert.Equal(t, past.ID, out[0].BookingID)
		assert.Equal(t, "Kia", out[0].CarMake)
		assert.Equal(t, "Rio", out[0].CarModel)
		assert.Equal(t, 250.0, out[0].TotalPrice)
		assert.Equal(t, 50.0, out[0].AdvancePayment)
	}
	assert.NoError(t, f.redis.ExpectationsWereMet())
}

func TestListForUser_ReconcilesCurrentBookingToRented(t *testing.T) {
	f := newFixture(t)

	userID := uuid.New()
	carID := uuid.New()
	current := domain.Booking{
		ID:        uuid.New(),
		UserID:    userID,
		CarID:     carID,
		Status:    domain.BookingConfirmed,
		StartDate: domain.Day(time.Now()).AddDate(0, 0, -1),
		EndDate:   domain.Day(time.Now()).AddDate(0, 0, 2),
	}

	f.bookingRepo.On("GetByUser", mock.Anything, userID).Return([]domain.Booking{current}, nil)
	f.carRepo.On("GetByID", mock.Anything, carID).
		Return(&domain.Car{ID: carID, Make: "Kia", Model: "Rio", Status: domain.CarReserved}, nil)
	f.bookingRepo.On("FindActiveByCar", mock.Anything, carID).Return([]domain.Booking{current}, nil)
	f.carRepo.On("UpdateStatus", mock.Anything, mock.Anything, carID, domain.CarRented).Return(nil)
	f.redis.ExpectDel(fmt.Sprintf("car:%s", carID)).SetVal(1)

	out, err := f.svc.ListForUser(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.NoError(t, f.redis.ExpectationsWereMet())
}

func TestListForUser_CancelledBookingDoesNotFreeCarHeldByOther(t *testing.T) {
	f := newFixture(t)

	userID := uuid.New()
	carID := uuid.New()
	cancelled := domain.Booking{
		ID:        uuid.New(),
		UserID:    userID,
		CarID:     carID,
		Status:    domain.BookingCancelled,
		StartDate: domain.Day(time.Now()).AddDate(0, 0, -1),
		EndDate:   domain.Day(time.Now()).AddDate(0, 0, 2),
	}

	f.bookingRepo.On("GetByUser", mock.Anything, userID).Return([]domain.Booking{cancelled}, nil)
	f.carRepo.On("GetByID", mock.Anything, carID).
		Return(&domain.Car{ID: carID, Make: "Kia", Model: "Rio", Status: domain.CarRented}, nil)

	out, err := f.svc.ListForUser(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	f.carRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, carID, mock.Anything)
}

func TestCancel_ReleaseFailureDoesNotUndoCancellation(t *testing.T) {
	f := newFixture(t)

	bookingID := uuid.New()
	carID := uuid.New()

	f.bookingRepo.On("GetByID", mock.Anything, bookingID).
		Return(&domain.Booking{ID: bookingID, CarID: carID, Status: domain.BookingPending}, nil)
	f.bookingRepo.On("UpdateStatus", mock.Anything, bookingID, domain.BookingCancelled).Return(nil)
	f.carRepo.On("GetByID", mock.Anything, carID).
		Return(nil, domain.NewStoreError("get car", errors.New("connection reset")))
	f.notifier.On("Notify", mock.AnythingOfType("string")).Return()

	err := f.svc.Cancel(context.Background(), bookingID)
	assert.NoError(t, err)
}

func TestListForUser_CarUpdateFailureDoesNotFailRead(t *testing.T) {
	f := newFixture(t)

	userID := uuid.New()
	carID := uuid.New()
	past := domain.Booking{
		ID:        uuid.New(),
		UserID:    userID,
		CarID:     carID,
		Status:    domain.BookingConfirmed,
		StartDate: domain.Day(time.Now()).AddDate(0, 0, -10),
		EndDate:   domain.Day(time.Now()).AddDate(0, 0, -5),
	}

	f.bookingRepo.On("GetByUser", mock.Anything, userID).Return([]domain.Booking{past}, nil)
	f.carRepo.On("GetByID", mock.Anything, carID).
		Return(&domain.Car{ID: carID, Make: "Kia", Model: "Rio", Status: domain.CarRented}, nil)
	f.bookingRepo.On("FindActiveByCar", mock.Anything, carID).Return([]domain.Booking{past}, nil)
	f.carRepo.On("UpdateStatus", mock.Anything, mock.Anything, carID, domain.CarAvailable).
		Return(domain.NewStoreError("update car status", errors.New("connection reset")))

	out, err := f.svc.ListForUser(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestListAll(t *testing.T) {
	f := newFixture(t)

	bookings := []domain.Booking{{ID: uuid.New()}, {ID: uuid.New()}}
	f.bookingRepo.On("ListAll", mock.Anything).Return(bookings, nil)

	out, err := f.svc.ListAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, bookings, out)
}
