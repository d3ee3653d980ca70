package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/okarpov/carshare/internal/core/domain"
	"github.com/okarpov/carshare/internal/core/ports"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, car_id, start_date, end_date, status, total_price, advance_payment, created_at, confirmed_at, cancelled_at`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	var b domain.Booking
	var confirmedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.CarID,
		&b.StartDate,
		&b.EndDate,
		&b.Status,
		&b.TotalPrice,
		&b.AdvancePayment,
		&b.CreatedAt,
		&confirmedAt,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	if confirmedAt.Valid {
		b.ConfirmedAt = &confirmedAt.Time
	}
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}
	b.StartDate = domain.Day(b.StartDate)
	b.EndDate = domain.Day(b.EndDate)
	return &b, nil
}

func (r *BookingRepository) Create(ctx context.Context, tx ports.Tx, booking *domain.Booking) error {
	query := `
	INSERT INTO bookings (id, user_id, car_id, start_date, end_date, status, total_price, advance_payment, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := pick(r.db, tx).ExecContext(ctx, query,
		booking.ID, booking.UserID, booking.CarID,
		booking.StartDate, booking.EndDate, booking.Status,
		booking.TotalPrice, booking.AdvancePayment, booking.CreatedAt,
	)
	if err != nil {
		return domain.NewStoreError("insert booking", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrBookingNotFound
		}
		return nil, domain.NewStoreError("get booking", err)
	}
	return b, nil
}

func (r *BookingRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY start_date`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, domain.NewStoreError("list user bookings", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.NewStoreError("list bookings", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// Two inclusive ranges intersect when a.start <= b.end AND a.end >= b.start.
const overlapClause = `start_date <= $3 AND end_date >= $2 AND status = ANY($4)`

func (r *BookingRepository) FindOverlappingByCar(ctx context.Context, tx ports.Tx, carID uuid.UUID, start, end time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE car_id = $1 AND ` + overlapClause

	rows, err := pick(r.db, tx).QueryContext(ctx, query, carID, start, end, pq.Array(statusStrings(statuses)))
	if err != nil {
		return nil, domain.NewStoreError("find overlapping car bookings", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepository) FindOverlappingByUser(ctx context.Context, tx ports.Tx, userID uuid.UUID, start, end time.Time, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 AND ` + overlapClause

	rows, err := pick(r.db, tx).QueryContext(ctx, query, userID, start, end, pq.Array(statusStrings(statuses)))
	if err != nil {
		return nil, domain.NewStoreError("find overlapping user bookings", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepository) FindActiveByCar(ctx context.Context, carID uuid.UUID) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE car_id = $1 AND status = ANY($2)`

	rows, err := r.db.QueryContext(ctx, query, carID, pq.Array(statusStrings(domain.ActiveStatuses)))
	if err != nil {
		return nil, domain.NewStoreError("find active car bookings", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) error {
	query := `
	UPDATE bookings
	SET status = $1,
		confirmed_at = CASE WHEN $1 = 'CONFIRMED' THEN NOW() ELSE confirmed_at END,
		cancelled_at = CASE WHEN $1 = 'CANCELLED' THEN NOW() ELSE cancelled_at END
	WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, status, bookingID)
	if err != nil {
		return domain.NewStoreError("update booking status", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.NewStoreError("update booking status", err)
	}
	if affected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, bookingID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		return domain.NewStoreError("delete booking", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.NewStoreError("delete booking", err)
	}
	if affected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func collectBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.NewStoreError("scan booking", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("iterate bookings", err)
	}
	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
