package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/okarpov/carshare/internal/core/domain"
	"github.com/okarpov/carshare/internal/core/ports"
)

type CarRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) *CarRepository {
	return &CarRepository{db: db}
}

const carColumns = `id, make, model, body_type, year, license_plate, color, engine_volume, mileage, image_url, daily_rate, status, created_at, updated_at`

func scanCar(row interface{ Scan(...any) error }) (*domain.Car, error) {
	var c domain.Car
	var color, imageURL sql.NullString

	err := row.Scan(
		&c.ID,
		&c.Make,
		&c.Model,
		&c.BodyType,
		&c.Year,
		&c.LicensePlate,
		&color,
		&c.EngineVolume,
		&c.Mileage,
		&imageURL,
		&c.DailyRate,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Color = color.String
	c.ImageURL = imageURL.String
	return &c, nil
}

func (r *CarRepository) GetByID(ctx context.Context, carID uuid.UUID) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	car, err := scanCar(r.db.QueryRowContext(ctx, query, carID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrCarNotFound
		}
		return nil, domain.NewStoreError("get car", err)
	}
	return car, nil
}

func (r *CarRepository) List(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars ORDER BY make, model`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.NewStoreError("list cars", err)
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, domain.NewStoreError("scan car", err)
		}
		cars = append(cars, *car)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("iterate cars", err)
	}
	return cars, nil
}

func (r *CarRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `
	INSERT INTO cars (id, make, model, body_type, year, license_plate, color, engine_volume, mileage, image_url, daily_rate, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		car.ID, car.Make, car.Model, car.BodyType, car.Year, car.LicensePlate,
		car.Color, car.EngineVolume, car.Mileage, car.ImageURL,
		car.DailyRate, car.Status,
	)
	if err != nil {
		return domain.NewStoreError("insert car", err)
	}
	return nil
}

// Delete refuses when the car still has pending or confirmed bookings, so
// the ledger never ends up referencing a missing car.
func (r *CarRepository) Delete(ctx context.Context, carID uuid.UUID) error {
	query := `
	DELETE FROM cars
	WHERE id = $1
	  AND NOT EXISTS (
		SELECT 1 FROM bookings WHERE car_id = $1 AND status = ANY($2)
	  )
	`

	result, err := r.db.ExecContext(ctx, query, carID, pq.Array(statusStrings(domain.ActiveStatuses)))
	if err != nil {
		return domain.NewStoreError("delete car", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.NewStoreError("delete car", err)
	}
	if affected == 0 {
		// Either the car is gone or it is still booked.
		if _, err := r.GetByID(ctx, carID); err != nil {
			return err
		}
		return domain.ErrCarHasBookings
	}
	return nil
}

func (r *CarRepository) UpdateStatus(ctx context.Context, tx ports.Tx, carID uuid.UUID, status domain.CarStatus) error {
	query := `UPDATE cars SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := pick(r.db, tx).ExecContext(ctx, query, status, carID)
	if err != nil {
		return domain.NewStoreError("update car status", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.NewStoreError("update car status", err)
	}
	if affected == 0 {
		return domain.ErrCarNotFound
	}
	return nil
}
