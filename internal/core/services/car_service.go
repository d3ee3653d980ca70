package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/okarpov/carshare/internal/core/domain"
	"github.com/okarpov/carshare/internal/core/ports"
)

const carCacheTTL = 5 * time.Minute

// CarService is the fleet directory: car lookups and administrative CRUD.
// Reads go through a short-lived Redis snapshot that the booking lifecycle
// invalidates on every status write.
type CarService struct {
	carRepo ports.CarRepository
	cache   *redis.Client
	log     *logrus.Logger
}

func NewCarService(carRepo ports.CarRepository, cache *redis.Client, log *logrus.Logger) *CarService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CarService{carRepo: carRepo, cache: cache, log: log}
}

func (s *CarService) Get(ctx context.Context, carID uuid.UUID) (*domain.Car, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, carCacheKey(carID)).Result(); err == nil {
			var car domain.Car
			if err := json.Unmarshal([]byte(raw), &car); err == nil {
				return &car, nil
			}
			// Corrupt entry; fall through to the repository.
		}
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(car); err == nil {
			if err := s.cache.Set(ctx, carCacheKey(carID), raw, carCacheTTL).Err(); err != nil {
				s.log.WithError(err).WithField("car_id", carID).Warn("failed to cache car")
			}
		}
	}
	return car, nil
}

func (s *CarService) List(ctx context.Context) ([]domain.Car, error) {
	return s.carRepo.List(ctx)
}

func (s *CarService) Create(ctx context.Context, car *domain.Car) error {
	if car.ID == uuid.Nil {
		car.ID = uuid.New()
	}
	if car.Status == "" {
		car.Status = domain.CarAvailable
	}
	return s.carRepo.Create(ctx, car)
}

// Delete removes a car from the fleet. Cars with pending or confirmed
// bookings are refused; cancel or delete the bookings first.
func (s *CarService) Delete(ctx context.Context, carID uuid.UUID) error {
	if err := s.carRepo.Delete(ctx, carID); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, carCacheKey(carID)).Err(); err != nil {
			s.log.WithError(err).WithField("car_id", carID).Warn("failed to drop car cache entry")
		}
	}
	return nil
}
