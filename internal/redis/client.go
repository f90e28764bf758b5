package redisdb

import (
	"github.com/redis/go-redis/v9"

	"tweetforge/internal/config"
)

// NewClient builds a Redis client from config. Redis is optional: with no
// address configured this returns nil and callers run cacheless.
func NewClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
