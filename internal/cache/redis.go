package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the shared Store backend for deployments that want cached
// views to survive restarts or be shared between processes. Redis
// handles TTL expiry itself, so unlike the memory backend stale
// entries do get evicted.
type Redis struct {
	client *redis.Client
}

func NewRedis(addr string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) GetOrCompute(ctx context.Context, key string, ttl time.Duration, dest any, compute func() (any, error)) error {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(raw, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}

	value, err := compute()
	if err != nil {
		return err
	}

	raw, err = json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cache entry %s: %w", key, err)
	}

	return json.Unmarshal(raw, dest)
}
