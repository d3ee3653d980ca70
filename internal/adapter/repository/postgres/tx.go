package postgres

import (
	"context"
	"database/sql"

	"github.com/okarpov/carshare/internal/core/domain"
	"github.com/okarpov/carshare/internal/core/ports"
)

// TxManager runs a function inside one database transaction. Rollback is
// deferred so every early return unwinds cleanly; commit only happens when
// fn returns nil.
type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(tx ports.Tx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStoreError("begin transaction", err)
	}

	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStoreError("commit transaction", err)
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// pick returns the transaction handle when one is in scope, the pool
// otherwise.
func pick(db *sql.DB, tx ports.Tx) querier {
	if t, ok := tx.(*sql.Tx); ok && t != nil {
		return t
	}
	return db
}
