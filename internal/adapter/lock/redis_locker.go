package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	lockTTL       = 10 * time.Second
	retryInterval = 50 * time.Millisecond
)

var ErrLockTimeout = errors.New("timed out waiting for car lock")

// releaseScript deletes the lock only when the caller still owns it, so a
// slow holder whose TTL expired cannot release somebody else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisCarLocker serializes booking creation per car with a SET NX lock.
// The TTL bounds how long a crashed holder can wedge a car.
type RedisCarLocker struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisCarLocker(client *redis.Client, log *logrus.Logger) *RedisCarLocker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RedisCarLocker{client: client, log: log}
}

func lockKey(carID uuid.UUID) string {
	return fmt.Sprintf("lock:car:%s", carID)
}

func (l *RedisCarLocker) Acquire(ctx context.Context, carID uuid.UUID) (func(), error) {
	key := lockKey(carID)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			// Keep the cause visible so callers can tell a deadline from an
			// explicit cancellation.
			return nil, fmt.Errorf("%w: %w", ErrLockTimeout, ctx.Err())
		case <-time.After(retryInterval):
		}
	}

	release := func() {
		if err := releaseScript.Run(context.Background(), l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
			l.log.WithError(err).WithField("car_id", carID).Warn("failed to release car lock")
		}
	}
	return release, nil
}
