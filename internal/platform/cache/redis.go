package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Host string
	Port string
}

func NewRedisClient(cfg Config, log *logrus.Logger) (*redis.Client, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	log.Infof("Connecting to Redis at %s:%s...", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		DB:   0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis connected successfully")
	return client, nil
}
