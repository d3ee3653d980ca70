package services_test

import (
	"context"
	"encoding/json"
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
	"github.com/okarpov/carshare/internal/core/ports/mocks"
	"github.com/okarpov/carshare/internal/core/services"
)

func newCarFixture(t *testing.T) (*mocks.CarRepository, redismock.ClientMock, *services.CarService) {
	carRepo := mocks.NewCarRepository(t)
	db, redisMock := redismock.NewClientMock()

	log := logrus.New()
	log.SetOutput(io.Discard)

	return carRepo, redisMock, services.NewCarService(carRepo, db, log)
}

func TestCarGet_CacheMissThenHit(t *testing.T) {
	carRepo, redisMock, svc := newCarFixture(t)

	carID := uuid.New()
	car := &domain.Car{ID: carID, Make: "Lada", Model: "Vesta", DailyRate: 50, Status: domain.CarAvailable}
	raw, err := json.Marshal(car)
	assert.NoError(t, err)

	key := fmt.Sprintf("car:%s", carID)

	// First read misses the cache and populates it from the repository.
	redisMock.ExpectGet(key).RedisNil()
	carRepo.On("GetByID", mock.Anything, carID).Return(car, nil).Once()
	redisMock.ExpectSet(key, raw, 5*time.Minute).SetVal("OK")

	got, err := svc.Get(context.Background(), carID)
	assert.NoError(t, err)
	assert.Equal(t, car.Make, got.Make)

	// Second read is served entirely from the cache.
	redisMock.ExpectGet(key).SetVal(string(raw))

	got, err = svc.Get(context.Background(), carID)
	assert.NoError(t, err)
	assert.Equal(t, car.Model, got.Model)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCarGet_NotFound(t *testing.T) {
	carRepo, redisMock, svc := newCarFixture(t)

	carID := uuid.New()
	redisMock.ExpectGet(fmt.Sprintf("car:%s", carID)).RedisNil()
	carRepo.On("GetByID", mock.Anything, carID).Return(nil, domain.ErrCarNotFound)

	_, err := svc.Get(context.Background(), carID)
	assert.ErrorIs(t, err, domain.ErrCarNotFound)
}

func TestCarCreate_Defaults(t *testing.T) {
	carRepo, _, svc := newCarFixture(t)

	car := &domain.Car{Make: "Kia", Model: "Rio", LicensePlate: "A123BC", DailyRate: 40}
	carRepo.On("Create", mock.Anything, car).Return(nil)

	err := svc.Create(context.Background(), car)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, car.ID)
	assert.Equal(t, domain.CarAvailable, car.Status)
}

func TestCarDelete_RefusedWhileBooked(t *testing.T) {
	carRepo, _, svc := newCarFixture(t)

	carID := uuid.New()
	carRepo.On("Delete", mock.Anything, carID).Return(domain.ErrCarHasBookings)

	err := svc.Delete(context.Background(), carID)
	assert.ErrorIs(t, err, domain.ErrCarHasBookings)
}
