package redis

import (
	"context"
	"time"

	redisclient "github.com/muhammadheryan/runhub-checkout/cmd/redis"
	goredis "github.com/redis/go-redis/v9"
)

// Repository wraps the Redis operations used for callback deduplication.
type Repository interface {
	// Get returns "" for a missing key.
	Get(ctx context.Context, key string) (string, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// AcquireLock reports whether the caller now owns key. Without a
	// configured client every lock is granted and the database guards apply.
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

type redis struct {
	client func() *goredis.Client
}

// NewRepository returns a Repository backed by the shared client in cmd/redis.
func NewRepository() Repository {
	return &redis{client: redisclient.Get}
}

func (r *redis) Get(ctx context.Context, key string) (string, error) {
	client := r.client()
	if client == nil {
		return "", nil
	}
	val, err := client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	client := r.client()
	if client == nil {
		return nil
	}
	return client.Set(ctx, key, value, ttl).Err()
}

func (r *redis) Delete(ctx context.Context, key string) error {
	client := r.client()
	if client == nil {
		return nil
	}
	return client.Del(ctx, key).Err()
}

func (r *redis) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	client := r.client()
	if client == nil {
		return true, nil
	}
	return client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

func (r *redis) ReleaseLock(ctx context.Context, key string) error {
	return r.Delete(ctx, key)
}
