package domain

import (
	"time"

	"github.com/google/uuid"
)

type CarStatus string

const (
	CarAvailable   CarStatus = "AVAILABLE"
	CarReserved    CarStatus = "RESERVED"
	CarRented      CarStatus = "RENTED"
	CarUnavailable CarStatus = "UNAVAILABLE"
)

type Car struct {
	ID           uuid.UUID
	Make         string
	Model        string
	BodyType     string
	Year         int
	LicensePlate string
	Color        string
	EngineVolume int
	Mileage      float64
	ImageURL     string
	DailyRate    float64
	Status       CarStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c *Car) IsAvailable() bool {
	return c.Status == CarAvailable
}
