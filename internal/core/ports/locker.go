package ports

import (
	"context"

	"github.com/google/uuid"
)

// CarLocker serializes booking creation per car. Two concurrent create calls
// for the same car must not both pass the overlap check, so the caller holds
// the lock across check and write.
type CarLocker interface {
	// Acquire blocks the car for the caller and returns a release func.
	// Release must run on every exit path.
	Acquire(ctx context.Context, carID uuid.UUID) (release func(), err error)
}
