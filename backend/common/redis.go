package common

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RDB is the shared redis client backing sessions and the job queue.
// It is set once by InitRedisClient during bootstrap; components receive
// it by injection rather than reaching for the package variable.
var RDB *redis.Client

func InitRedisClient() error {
	opt, err := redis.ParseURL(RedisConnString)
	if err != nil {
		return fmt.Errorf("parse redis connection string: %w", err)
	}
	RDB = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := RDB.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// RedisAlive reports whether the cache answers a ping. Used by /status.
func RedisAlive(ctx context.Context) bool {
	if RDB == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return RDB.Ping(ctx).Err() == nil
}
