package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDeduper suppresses repeated side effects across passes and process
// restarts with SET NX keys.
type RedisDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDeduper(client *redis.Client, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{
		client: client,
		ttl:    ttl,
	}
}

// Once reports whether this is the first sighting of the key within the ttl.
func (d *RedisDeduper) Once(ctx context.Context, key string) (bool, error) {
	first, err := d.client.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis.SetNX: %w", err)
	}

	return first, nil
}
