package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/okarpov/carshare/internal/core/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	query := `SELECT id, name, email, status, created_at FROM users WHERE id = $1`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Status,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewStoreError("get user", err)
	}
	return &u, nil
}
