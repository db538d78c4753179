package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	collectionKeyPrefix = "launchops:collection:"
	redisTimeout        = 5 * time.Second
)

// RedisStore is a Store keeping each collection payload in one Redis string.
// The Store contract is synchronous, so every call carries its own timeout.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, collectionKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (r *RedisStore) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	return r.client.Set(ctx, collectionKeyPrefix+key, value, 0).Err()
}
