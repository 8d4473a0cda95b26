package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the documents as plain Redis strings under the
// well-known keys.
type RedisStore struct {
	docStore
	client *redis.Client
}

type redisBlobs struct {
	client *redis.Client
}

// NewRedisStore wraps a Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{docStore: docStore{b: redisBlobs{client: client}}, client: client}
}

// Ping checks the connection.
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

func (r redisBlobs) get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (r redisBlobs) set(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, key, data, 0).Err()
}

func (r redisBlobs) del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
