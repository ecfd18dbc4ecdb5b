package realtime

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/community-hub/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedis creates the Redis client used for cross-instance event fanout.
func NewRedis(cfg *config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	slog.Info("redis client created", "addr", cfg.RedisAddr)
	return rdb
}
