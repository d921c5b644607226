package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps the entries as plain redis keys with no expiry, for
// deployments that already run redis and want the data off the local disk.
type RedisBackend struct {
	rdb *redis.Client
}

// OpenRedis connects to the redis instance at addr and verifies the
// connection with a ping.
func OpenRedis(addr string) (*RedisBackend, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisBackend{rdb: rdb}, nil
}

func (b *RedisBackend) Read(ctx context.Context, key string) ([]byte, error) {
	payload, err := b.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return payload, nil
}

func (b *RedisBackend) Write(ctx context.Context, key string, payload []byte) error {
	if err := b.rdb.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) Close() error { return b.rdb.Close() }
