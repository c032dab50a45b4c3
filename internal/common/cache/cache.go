package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-gateway/internal/platform/redis"

	goredis "github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key is absent.
var ErrMiss = goredis.Nil

type Service struct {
	client *redis.Client
}

func NewService(client *redis.Client) *Service {
	return &Service{client: client}
}

func (c *Service) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (c *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.client.Set(ctx, key, string(data), ttl).Err()
}

func (c *Service) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// GetOrSet reads key into dest, falling back to setter on a miss.
// Setter results are stored with the given TTL; cache write failures are
// not fatal to the read path.
func (c *Service) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, setter func() (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}

	value, err := setter()
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	_ = c.client.Set(ctx, key, string(data), ttl).Err()

	return json.Unmarshal(data, dest)
}

// AcquireLock sets a short-lived NX lock. It returns false when the lock
// is already held.
func (c *Service) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, "1", ttl).Result()
}

// ReleaseLock drops a lock taken via AcquireLock.
func (c *Service) ReleaseLock(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
