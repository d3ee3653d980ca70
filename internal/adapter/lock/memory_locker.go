package lock

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryCarLocker is a process-local CarLocker for single-instance
// deployments and tests. One mutex per car, created on first use.
type MemoryCarLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewMemoryCarLocker() *MemoryCarLocker {
	return &MemoryCarLocker{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (l *MemoryCarLocker) Acquire(ctx context.Context, carID uuid.UUID) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[carID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[carID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
