package config

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns nil when REDIS_ADDR is empty; callers treat that as
// "caching disabled".
func NewRedis(ctx context.Context, c *Config) (*redis.Client, error) {
	val := strings.TrimSpace(c.RedisAddr)
	if val == "" {
		return nil, nil
	}

	var rdb *redis.Client
	if strings.HasPrefix(val, "redis://") || strings.HasPrefix(val, "rediss://") {
		opt, err := redis.ParseURL(val)
		if err != nil {
			return nil, err
		}
		rdb = redis.NewClient(opt)
	} else {
		rdb = redis.NewClient(&redis.Options{Addr: val})
	}

	if err := rdb.Ping(ctx).Err(); err != nil {
		return rdb, err
	}
	return rdb, nil
}
